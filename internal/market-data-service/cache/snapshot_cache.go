package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	sharedcache "github.com/radieske/exchange-market-data/internal/shared/cache"
	"github.com/radieske/exchange-market-data/pkg/contracts/markets"
)

// Cache lê os snapshots gravados pelo market-decoder-worker
type Cache struct{ R *redis.Client }

func New(r *redis.Client) *Cache { return &Cache{R: r} }

func (c *Cache) get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) GetPrices(ctx context.Context, marketID int64) (*markets.MarketPrices, bool, error) {
	var mp markets.MarketPrices
	ok, err := c.get(ctx, sharedcache.KeyPrices(marketID), &mp)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &mp, true, nil
}

func (c *Cache) GetComplete(ctx context.Context, marketID int64) (*markets.CompleteMarketPrices, bool, error) {
	var cp markets.CompleteMarketPrices
	ok, err := c.get(ctx, sharedcache.KeyComplete(marketID), &cp)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &cp, true, nil
}

// GetMarkets retorna a última listagem de mercados (vazia se ainda não houver)
func (c *Cache) GetMarkets(ctx context.Context) ([]markets.Market, error) {
	var ms []markets.Market
	if _, err := c.get(ctx, sharedcache.KeyMarketList, &ms); err != nil {
		return nil, err
	}
	if ms == nil {
		ms = []markets.Market{}
	}
	return ms, nil
}
