package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

func TestPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := c.Subscribe(ctx, ChannelMarketDataBroadcast)
	defer sub.Close()
	_, err := sub.Receive(ctx) // confirmação da inscrição
	require.NoError(t, err)

	b := NewRedisBroadcaster(c, "")
	require.NoError(t, b.Publish(ctx, events.MarketDataDecoded{Kind: events.KindPrices, MarketID: 42}))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var upd WSUpdate
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &upd))
	assert.Equal(t, int64(42), upd.MarketID)
	assert.Equal(t, events.KindPrices, upd.Kind)
}
