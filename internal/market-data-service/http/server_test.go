package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/exchange-market-data/internal/market-data-service/cache"
	sharedcache "github.com/radieske/exchange-market-data/internal/shared/cache"
	"github.com/radieske/exchange-market-data/pkg/compact"
)

func newTestAPI(t *testing.T) (*API, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return &API{Cache: cache.New(c)}, mr
}

func seed(t *testing.T, mr *miniredis.Miniredis, key string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, mr.Set(key, string(b)))
}

func get(api *API, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil).WithContext(context.Background()))
	return rec
}

func TestGetPrices(t *testing.T) {
	api, mr := newTestAPI(t)

	mp, err := compact.DecodeMarketPrices("100~GBP~ACTIVE~5~1~info~Y~0.05~1577836800000~~N:" +
		"1~0~0~0~0~0~false~0~0~0|2.5~10~B~0~0|2.6~5~L~0~0:" +
		"2~1~0~0~0~0~false~0~0~0")
	require.NoError(t, err)
	seed(t, mr, sharedcache.KeyPrices(100), mp)

	rec := get(api, "/v1/markets/100/prices")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"currency":"GBP"`)

	rec = get(api, "/v1/markets/100/prices/best")
	require.Equal(t, http.StatusOK, rec.Code)
	var best []BestPrice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &best))
	require.Len(t, best, 2)
	require.NotNil(t, best[0].Back)
	assert.Equal(t, "2.5", best[0].Back.String())
	assert.Equal(t, "2.6", best[0].Lay.String())
	assert.Nil(t, best[1].Back)

	assert.Equal(t, http.StatusNotFound, get(api, "/v1/markets/101/prices").Code)
	assert.Equal(t, http.StatusBadRequest, get(api, "/v1/markets/abc/prices").Code)
}

func TestListMarkets(t *testing.T) {
	api, mr := newTestAPI(t)

	rec := get(api, "/v1/markets")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	ms, err := compact.DecodeMarkets(
		"1~A~O~ACTIVE~0~x~1~0~1~~0~2~1~0~N~N:" +
			"2~B~O~SUSPENDED~0~x~1~0~1~~0~2~1~0~N~N")
	require.NoError(t, err)
	seed(t, mr, sharedcache.KeyMarketList, ms)

	rec = get(api, "/v1/markets?status=suspended")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0]["name"])
}

func TestGetComplete(t *testing.T) {
	api, mr := newTestAPI(t)

	cp, err := compact.DecodeCompleteMarketPrices("100~0~:1~0~0~0~0~0~false~5~0~0~0|2~1~1~0~0")
	require.NoError(t, err)
	seed(t, mr, sharedcache.KeyComplete(100), cp)

	rec := get(api, "/v1/markets/100/complete")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"asianLineId":5`)
}
