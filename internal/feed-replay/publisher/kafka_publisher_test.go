package publisher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

func TestMessageKeys(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	msg, err := Message(events.CompactPayload{ID: "a", Kind: events.KindPrices, MarketID: 100, Data: "x", ReceivedAt: at})
	require.NoError(t, err)
	assert.Equal(t, "100", string(msg.Key))
	assert.True(t, msg.Time.Equal(at))

	var back events.CompactPayload
	require.NoError(t, json.Unmarshal(msg.Value, &back))
	assert.Equal(t, "x", back.Data)

	msg, err = Message(events.CompactPayload{Kind: events.KindMarkets})
	require.NoError(t, err)
	assert.Equal(t, "markets", string(msg.Key))
}

func TestNewKafkaPublisherRequiresBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "t", "prod", zap.NewNop())
	assert.Error(t, err)

	p, err := NewKafkaPublisher([]string{"localhost:9092"}, "t", "prod", zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
