package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/exchange-market-data/internal/market-decoder/cache"
	"github.com/radieske/exchange-market-data/internal/market-decoder/consumer"
	"github.com/radieske/exchange-market-data/internal/market-decoder/pubsub"
	sharedcache "github.com/radieske/exchange-market-data/internal/shared/cache"
	"github.com/radieske/exchange-market-data/internal/shared/config"
	"github.com/radieske/exchange-market-data/internal/shared/kafka"
	"github.com/radieske/exchange-market-data/internal/shared/logger"
	"github.com/radieske/exchange-market-data/internal/shared/metrics"
	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	redisClient, err := sharedcache.ConnectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	rcache := cache.NewRedisCache(redisClient, cfg.SnapshotTTL)
	broadcaster := pubsub.NewRedisBroadcaster(redisClient, cfg.RedisPubSubChannel)

	// Consumer Kafka (consumer group market-decoder) + writers de saída e DLQ
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicCompactPayloads, cfg.ConsumerGroup)
	defer reader.Close()

	outWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMarketData)
	defer outWriter.Close()

	var dlq consumer.Publisher
	if cfg.TopicCompactPayloadsDLQ != "" {
		dlqWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicCompactPayloadsDLQ)
		defer dlqWriter.Close()
		dlq = kafka.JSONPublisher{W: dlqWriter}
	}

	// Métricas Prometheus para monitoramento da decodificação
	m := metrics.NewDecodeMetrics(prometheus.DefaultRegisterer)

	proc := &consumer.Processor{
		Log:         log,
		Reader:      reader,
		Cache:       rcache,
		Out:         kafka.JSONPublisher{W: outWriter},
		DLQ:         dlq,
		OnConsumed:  func() { m.Consumed.Inc() },
		OnDecoded:   m.ObserveDecode,
		OnPublished: func() { m.Published.Inc() },
		OnError:     func(stage string) { m.Errors.WithLabelValues(stage).Inc() },

		OnAfterPublish: func(ev events.MarketDataDecoded) {
			pctx, pcancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer pcancel()

			if err := broadcaster.Publish(pctx, ev); err != nil {
				log.Warn("ws broadcast publish failed", zap.Error(err))
				m.Errors.WithLabelValues("broadcast").Inc()
			}
		},
	}

	// Servidor HTTP para métricas e health check
	srv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}, log)
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer scancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Info("market-decoder started",
		zap.String("consume", cfg.TopicCompactPayloads),
		zap.String("publish", cfg.TopicMarketData),
		zap.String("dlq", cfg.TopicCompactPayloadsDLQ),
	)
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("market-decoder stopped")
}
