package config

import (
	"os"
	"strings"
	"time"

	platformstrings "refdata/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	Postgres      PostgresConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
}

// PostgresConfig holds the database connection settings. An empty DSN
// selects the in-memory stores, which keeps local development self-contained.
type PostgresConfig struct {
	DSN string
}

// RedisConfig holds cache connection settings. An empty URL disables caching.
type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

// KafkaConfig holds event publishing settings. No brokers disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("REFDATA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	cacheTTL := 5 * time.Minute
	if raw := os.Getenv("REFDATA_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cacheTTL = d
		}
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = platformstrings.DedupeAndTrim(strings.Split(raw, ","))
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "refdata.events"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		Postgres:      PostgresConfig{DSN: os.Getenv("POSTGRES_DSN")},
		Redis:         RedisConfig{URL: os.Getenv("REDIS_URL"), CacheTTL: cacheTTL},
		Kafka:         KafkaConfig{Brokers: brokers, Topic: topic},
	}
}
