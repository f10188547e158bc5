package decoder

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/exchange-market-data/pkg/compact"
	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestDecodeKinds(t *testing.T) {
	out, err := Decode(events.CompactPayload{
		ID:   "p1",
		Kind: events.KindMarkets,
		Data: "100~Match Odds~O~ACTIVE~1577836800000~Tennis/ATP~1/23~5~1~GBR~1577836800000~2~1~1000.5~Y~N:",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, "p1", out.PayloadID)
	assert.Len(t, out.Markets, 1)
	assert.Nil(t, out.Prices)
	assert.True(t, out.DecodedAt.Equal(now))

	out, err = Decode(events.CompactPayload{
		Kind: events.KindPrices,
		Data: "100~GBP~ACTIVE~5~1~info~Y~0.05~1577836800000~~N:1~0~0~0~0~0~false~0~0~0|2~5~B~0~0",
	}, now)
	require.NoError(t, err)
	require.NotNil(t, out.Prices)
	assert.Equal(t, int64(100), out.MarketID)
	assert.Len(t, out.Prices.RunnerPrices, 1)

	out, err = Decode(events.CompactPayload{Kind: events.KindComplete, Data: "200~0~"}, now)
	require.NoError(t, err)
	require.NotNil(t, out.Complete)
	assert.Equal(t, int64(200), out.MarketID)
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := Decode(events.CompactPayload{Kind: "traded-volume"}, now)
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.Equal(t, "", Segment(err))
}

func TestFailure(t *testing.T) {
	p := events.CompactPayload{ID: "p2", Kind: events.KindPrices, Data: "100~GBP~ACTIVE~5~1~info~Y~0.05~0~~N:1~2"}

	_, err := Decode(p, now)
	require.ErrorIs(t, err, compact.ErrMalformedRecord)
	assert.Equal(t, "runner", Segment(err))

	f := Failure(p, err, now)
	assert.Equal(t, "p2", f.Payload.ID)
	assert.Equal(t, "runner", f.Segment)
	assert.Equal(t, 0, f.Index)
	assert.Equal(t, -1, f.Level)
	assert.Equal(t, err.Error(), f.Reason)

	f = Failure(p, errors.New("boom"), now)
	assert.Equal(t, "", f.Segment)
	assert.Equal(t, -1, f.Index)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "100", Key(events.KindPrices, 100))
	assert.Equal(t, "markets", Key(events.KindMarkets, 0))
}
