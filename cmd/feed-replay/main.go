package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/radieske/exchange-market-data/internal/feed-replay/publisher"
	"github.com/radieske/exchange-market-data/internal/feed-replay/source"
	"github.com/radieske/exchange-market-data/internal/shared/config"
	"github.com/radieske/exchange-market-data/internal/shared/kafka"
	"github.com/radieske/exchange-market-data/internal/shared/logger"
	"github.com/radieske/exchange-market-data/internal/shared/metrics"
	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

var replayed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "feed_replay_payloads_total",
	Help: "Payloads compactos publicados a partir do dump",
})

type countingPublisher struct {
	*publisher.KafkaPublisher
}

func (c countingPublisher) Publish(ctx context.Context, p events.CompactPayload) error {
	if err := c.KafkaPublisher.Publish(ctx, p); err != nil {
		return err
	}
	replayed.Inc()
	return nil
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kind, err := source.ParseKind(cfg.ReplayKind)
	if err != nil {
		log.Fatal("invalid REPLAY_KIND", zap.Error(err))
	}

	f, err := os.Open(cfg.ReplayFile)
	if err != nil {
		log.Fatal("open dump", zap.String("file", cfg.ReplayFile), zap.Error(err))
	}
	defer f.Close()

	// Kafka Publisher
	pub, err := publisher.NewKafkaPublisher(kafka.Brokers(cfg.KafkaBrokers), cfg.TopicCompactPayloads, cfg.Env, log)
	if err != nil {
		log.Fatal("kafka publisher", zap.Error(err))
	}
	defer pub.Close()

	// Metrics e health
	srv := metrics.StartMetricsServer(cfg.MetricsPort, nil, log)
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer scancel()
		_ = srv.Shutdown(sctx)
	}()

	reader := source.DumpReader{
		Kind:     kind,
		Source:   cfg.ReplayFile,
		Interval: cfg.ReplayInterval,
	}

	log.Info("replay started",
		zap.String("file", cfg.ReplayFile),
		zap.String("kind", string(kind)),
		zap.String("topic", cfg.TopicCompactPayloads),
	)
	n, err := reader.Replay(ctx, f, countingPublisher{pub})
	if err != nil && ctx.Err() == nil {
		log.Error("replay failed", zap.Int("published", n), zap.Error(err))
		return
	}
	log.Info("replay finished", zap.Int("published", n))
}
