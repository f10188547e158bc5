package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	ctopics "github.com/radieske/exchange-market-data/pkg/contracts/topics"
)

// Config centraliza variáveis de ambiente e parâmetros de execução dos serviços
// Inclui conexões, tópicos, canais e portas
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string // ex: "market-decoder-worker", "market-data-service", ...
	LogLevel    string // debug | info | warn | error

	RedisAddr    string
	KafkaBrokers string // "a:9092,b:9092"

	// Tópicos/canais
	TopicCompactPayloads    string
	TopicMarketData         string
	TopicCompactPayloadsDLQ string
	RedisPubSubChannel      string
	ConsumerGroup           string

	// TTL dos snapshots no Redis
	SnapshotTTL time.Duration

	// feed-replay: arquivo .dump, tipo do payload e intervalo entre linhas
	ReplayFile     string
	ReplayKind     string
	ReplayInterval time.Duration

	// Portas do serviço atual
	HTTPPort    string // Porta pública (ex.: API REST)
	MetricsPort string // Porta exclusiva para /metrics e /healthz
}

// Load carrega o .env (quando existir), lê as variáveis de ambiente e define
// defaults para cada serviço. Resolve portas conforme o SERVICE_NAME.
func Load() Config {
	// variáveis já definidas no ambiente têm precedência sobre o .env
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	svc := getEnv("SERVICE_NAME", "")
	env := getEnv("ENV", "local")

	cfg := Config{
		Env:         env,
		ServiceName: svc,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),

		TopicCompactPayloads:    getEnv("KAFKA_TOPIC_COMPACT", ctopics.CompactPayloads),
		TopicMarketData:         getEnv("KAFKA_TOPIC_MARKET_DATA", ctopics.MarketData),
		TopicCompactPayloadsDLQ: getEnv("KAFKA_TOPIC_COMPACT_DLQ", ctopics.CompactPayloadsDLQ),
		RedisPubSubChannel:      getEnv("REDIS_PUBSUB_CHANNEL", "market_data_broadcast"),
		ConsumerGroup:           getEnv("KAFKA_CONSUMER_GROUP", "market-decoder"),

		SnapshotTTL: getDuration("SNAPSHOT_TTL", 60*time.Second),

		ReplayFile:     getEnv("REPLAY_FILE", "testdata/prices.dump"),
		ReplayKind:     getEnv("REPLAY_KIND", "prices"),
		ReplayInterval: getDuration("REPLAY_INTERVAL", time.Second),
	}

	// Define portas padrão para cada serviço
	switch svc {
	case "market-decoder-worker":
		cfg.HTTPPort = getEnv("HTTP_PORT_DECODER", "") // worker não expõe HTTP público
		cfg.MetricsPort = getEnv("METRICS_PORT_DECODER", "9097")
	case "feed-replay":
		cfg.HTTPPort = getEnv("HTTP_PORT_REPLAY", "")
		cfg.MetricsPort = getEnv("METRICS_PORT_REPLAY", "9096")
	case "market-data-service":
		cfg.HTTPPort = getEnv("HTTP_PORT", "8080")
		cfg.MetricsPort = getEnv("METRICS_PORT", "9095")
	default:
		cfg.HTTPPort = getEnv("HTTP_PORT", "8080")
		cfg.MetricsPort = getEnv("METRICS_PORT", "9095")
	}

	return cfg
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// getDuration aceita "30s", "2m" ou segundos inteiros ("45")
func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
