package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	sharedcache "github.com/radieske/exchange-market-data/internal/shared/cache"
	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

// RedisCache guarda o snapshot mais recente de cada mercado no Redis
// Client: cliente Redis
// TTL: tempo de expiração dos registros
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache cria uma instância de cache Redis com TTL configurável
func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, TTL: ttl}
}

// SetSnapshot armazena o snapshot decodificado na chave do seu kind.
// A listagem de mercados substitui a anterior por inteiro.
func (r *RedisCache) SetSnapshot(ctx context.Context, ev events.MarketDataDecoded) error {
	var (
		key string
		v   any
	)
	switch {
	case ev.Prices != nil:
		key, v = sharedcache.KeyPrices(ev.Prices.MarketID), ev.Prices
	case ev.Complete != nil:
		key, v = sharedcache.KeyComplete(ev.Complete.MarketID), ev.Complete
	default:
		key, v = sharedcache.KeyMarketList, ev.Markets
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key, b, r.TTL).Err()
}
