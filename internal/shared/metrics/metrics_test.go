package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDecode(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDecodeMetrics(reg)

	m.ObserveDecode("prices", "", time.Millisecond, nil)
	m.ObserveDecode("prices", "runner", time.Millisecond, errors.New("boom"))
	m.ObserveDecode("markets", "", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decoded.WithLabelValues("prices")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("prices", "runner")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("markets", "unknown")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestHandlerHealth(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewDecodeMetrics(reg)

	healthy := Handler(reg, func(context.Context) error { return nil })
	rec := httptest.NewRecorder()
	healthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	sick := Handler(reg, func(context.Context) error { return errors.New("redis down") })
	rec = httptest.NewRecorder()
	sick.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis down")

	rec = httptest.NewRecorder()
	healthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "market_decoder_messages_consumed_total")
}
