package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// canal usado quando a config não define REDIS_PUBSUB_CHANNEL
const PubSubChannel = "market_data_broadcast"

// StartRedisSubscriber assina o canal onde o market-decoder publica cada
// snapshot decodificado e entrega ao Hub. Mensagens que não são MarketUpdate
// válidos são logadas e descartadas. Retorna sem bloquear.
func StartRedisSubscriber(ctx context.Context, r *redis.Client, channel string, hub *Hub, log *zap.Logger) {
	if channel == "" {
		channel = PubSubChannel
	}
	sub := r.Subscribe(ctx, channel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg == nil {
					continue
				}
				var upd MarketUpdate
				if err := json.Unmarshal([]byte(msg.Payload), &upd); err != nil {
					log.Warn("ws subscriber unmarshal error", zap.Error(err))
					continue
				}
				hub.Broadcast(upd)
			}
		}
	}()
}
