package pubsub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

const ChannelMarketDataBroadcast = "market_data_broadcast"

type RedisBroadcaster struct {
	r       *redis.Client
	channel string
}

func NewRedisBroadcaster(r *redis.Client, channel string) *RedisBroadcaster {
	if channel == "" {
		channel = ChannelMarketDataBroadcast
	}
	return &RedisBroadcaster{r: r, channel: channel}
}

// Publish envia o snapshot para o canal usado pelo WS do market-data-service
func (b *RedisBroadcaster) Publish(ctx context.Context, ev events.MarketDataDecoded) error {
	msg, err := json.Marshal(WSUpdate{MarketID: ev.MarketID, Kind: ev.Kind, Payload: ev})
	if err != nil {
		return err
	}
	return b.r.Publish(ctx, b.channel, msg).Err()
}

// Payload padrão para o WS do market-data-service
type WSUpdate struct {
	MarketID int64              `json:"marketId"`
	Kind     events.PayloadKind `json:"kind"`
	Payload  interface{}        `json:"payload"`
}
