package compact

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/exchange-market-data/pkg/contracts/markets"
)

const matchOddsRecord = "100~Match Odds~O~ACTIVE~1577836800000~Tennis/ATP~1/23~5~1~GBR~1577836800000~2~1~1000.5~Y~N"

var newYear2020 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDecodeMarketsSingleRecord(t *testing.T) {
	got, err := DecodeMarkets(matchOddsRecord)
	require.NoError(t, err)
	require.Len(t, got, 1)

	m := got[0]
	assert.Equal(t, int64(100), m.ID)
	assert.Equal(t, "Match Odds", m.Name)
	assert.Equal(t, "O", m.Type)
	assert.Equal(t, markets.StatusActive, m.Status)
	assert.True(t, m.MarketTime.Equal(newYear2020))
	assert.Equal(t, "Tennis/ATP", m.MenuPath)
	assert.Equal(t, []int64{1, 23}, m.EventHierarchy)
	assert.Equal(t, int64(5), m.BetDelay)
	assert.Equal(t, int64(1), m.ExchangeID)
	assert.Equal(t, "GBR", m.CountryISO3)
	assert.False(t, m.International())
	assert.True(t, m.LastRefresh.Equal(newYear2020))
	assert.Equal(t, int64(2), m.NumberOfRunners)
	assert.Equal(t, int64(1), m.NumberOfWinners)
	assert.Equal(t, "1000.5", m.MatchedSize.String())
	assert.True(t, m.BSPMarket)
	assert.False(t, m.TurningInPlay)
}

func TestDecodeMarketsEscapedName(t *testing.T) {
	rec := `101~Tennis\:\ Pro~O~ACTIVE~1577836800000~Tennis\/ATP\~Finals~/1/23/~0~1~~1577836800000~2~1~0~N~Y`

	got, err := DecodeMarkets(rec)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Tennis: Pro", got[0].Name)
	assert.Equal(t, "Tennis/ATP~Finals", got[0].MenuPath)
	assert.Equal(t, []int64{1, 23}, got[0].EventHierarchy)
	assert.True(t, got[0].International())
	assert.True(t, got[0].TurningInPlay)
}

func TestDecodeMarketsKeepsLiteralBackslashes(t *testing.T) {
	rec := `102~A\-B~O~ACTIVE~1577836800000~\Horse Racing\GB\ (Ante Post)~1/7~0~1~GBR~1577836800000~8~1~0~N~N:` +
		`103~Foo\.Bar 50\\50~O~ACTIVE~1577836800000~\Horse Racing~1~0~1~GBR~1577836800000~8~1~0~N~N`

	got, err := DecodeMarkets(rec)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, `A\-B`, got[0].Name)
	assert.Equal(t, `\Horse Racing\GB\ (Ante Post)`, got[0].MenuPath)
	assert.Equal(t, `Foo\.Bar 50\\50`, got[1].Name)
	assert.Equal(t, `\Horse Racing`, got[1].MenuPath)
}

func TestDecodeMarketsTrailingDelimiter(t *testing.T) {
	batch := matchOddsRecord + ":" + strings.Replace(matchOddsRecord, "100~", "200~", 1)

	want, err := DecodeMarkets(batch)
	require.NoError(t, err)

	got, err := DecodeMarkets(batch + ":")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, got, 2)
}

func TestDecodeMarketsRecordCount(t *testing.T) {
	batch := ":" + matchOddsRecord + "::" + matchOddsRecord + ":\n"

	nonEmpty := 0
	for _, rec := range Split(strings.TrimSpace(batch), ':') {
		if rec != "" {
			nonEmpty++
		}
	}

	got, err := DecodeMarkets(batch)
	require.NoError(t, err)
	assert.Len(t, got, nonEmpty)
	assert.Len(t, got, 2)
}

func TestDecodeMarketsEmptyBatch(t *testing.T) {
	got, err := DecodeMarkets("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeMarketsShortRecord(t *testing.T) {
	short := strings.TrimSuffix(matchOddsRecord, "~N")

	_, err := DecodeMarkets(matchOddsRecord + ":" + short)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRecord))

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, SegmentMarket, de.Segment)
	assert.Equal(t, 1, de.Index)
	assert.Equal(t, "compact: market 1: malformed record: got 15 fields, want 16", err.Error())
}

func TestDecodeMarketsInvalidScalar(t *testing.T) {
	bad := strings.Replace(matchOddsRecord, "~5~1~GBR~", "~five~1~GBR~", 1)

	_, err := DecodeMarkets(bad)
	require.ErrorIs(t, err, ErrInvalidScalar)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "betDelay", de.Field)
	assert.Equal(t, "five", de.Value)
	assert.Equal(t, `compact: market 0: field "betDelay": invalid scalar "five"`, err.Error())
}

func TestDecodeMarketsInvariants(t *testing.T) {
	noHierarchy := strings.Replace(matchOddsRecord, "~1/23~", "~/~", 1)
	_, err := DecodeMarkets(noHierarchy)
	require.ErrorIs(t, err, ErrMalformedRecord)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "eventHierarchy", de.Field)

	tooManyWinners := strings.Replace(matchOddsRecord, "~2~1~1000.5~", "~2~3~1000.5~", 1)
	_, err = DecodeMarkets(tooManyWinners)
	require.ErrorIs(t, err, ErrMalformedRecord)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "numberOfWinners", de.Field)

	counts := map[string]string{
		"~2~0~1000.5~":  "numberOfWinners",
		"~2~-1~1000.5~": "numberOfWinners",
		"~-2~1~1000.5~": "numberOfRunners",
	}
	for repl, field := range counts {
		_, err = DecodeMarkets(strings.Replace(matchOddsRecord, "~2~1~1000.5~", repl, 1))
		require.ErrorIs(t, err, ErrInvalidScalar, repl)
		require.ErrorAs(t, err, &de)
		assert.Equal(t, field, de.Field, repl)
	}
}
