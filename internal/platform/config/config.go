package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "facet/pkg/platform/strings"
)

// Server captures process level configuration for the profile service.
type Server struct {
	Addr          string
	JWTSigningKey string
	// AdminKeyHash is a bcrypt hash of the key required to queue profile
	// actions at runtime. Empty disables the queue endpoint.
	AdminKeyHash string

	PostgresDSN string
	Redis       RedisConfig
	Kafka       KafkaConfig

	RequestTimeout time.Duration
}

// RedisConfig carries connection tuning for the go-redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit event sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("FACET_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("FACET_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default, must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	topic := os.Getenv("FACET_KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "facet.audit.events"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		AdminKeyHash:  os.Getenv("FACET_ADMIN_KEY_HASH"),
		PostgresDSN:   os.Getenv("FACET_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("FACET_REDIS_URL"),
			PoolSize:     envInt("FACET_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("FACET_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("FACET_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("FACET_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("FACET_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: envList("FACET_KAFKA_BROKERS"),
			Topic:   topic,
		},
		RequestTimeout: envDuration("FACET_REQUEST_TIMEOUT", 30*time.Second),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	return pstrings.DedupeAndTrim(strings.Split(raw, ","))
}
