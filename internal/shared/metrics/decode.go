package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DecodeMetrics agrupa as métricas do pipeline de decodificação
type DecodeMetrics struct {
	Consumed  prometheus.Counter
	Decoded   *prometheus.CounterVec   // por kind
	Failures  *prometheus.CounterVec   // por kind e segmento
	Errors    *prometheus.CounterVec   // por estágio (read, cache, publish, dlq)
	Duration  *prometheus.HistogramVec // por kind
	Published prometheus.Counter
}

// NewDecodeMetrics cria e registra as métricas no registerer informado
func NewDecodeMetrics(reg prometheus.Registerer) *DecodeMetrics {
	m := &DecodeMetrics{
		Consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "market_decoder_messages_consumed_total",
			Help: "mensagens consumidas",
		}),
		Decoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "market_decoder_decoded_total",
			Help: "payloads decodificados com sucesso",
		}, []string{"kind"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "market_decoder_decode_failures_total",
			Help: "falhas de decodificação por segmento",
		}, []string{"kind", "segment"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "market_decoder_errors_total",
			Help: "erros por estágio",
		}, []string{"stage"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "market_decoder_decode_duration_seconds",
			Help:    "tempo de decodificação por payload",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"kind"}),
		Published: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "market_decoder_published_total",
			Help: "snapshots publicados (kafka + pubsub)",
		}),
	}
	reg.MustRegister(m.Consumed, m.Decoded, m.Failures, m.Errors, m.Duration, m.Published)
	return m
}

// ObserveDecode registra duração e resultado de uma decodificação
func (m *DecodeMetrics) ObserveDecode(kind, segment string, took time.Duration, err error) {
	m.Duration.WithLabelValues(kind).Observe(took.Seconds())
	if err != nil {
		if segment == "" {
			segment = "unknown"
		}
		m.Failures.WithLabelValues(kind, segment).Inc()
		return
	}
	m.Decoded.WithLabelValues(kind).Inc()
}
