package knownuser

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var isKnownDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "facet_known_user_lookup_duration_ms",
	Help:    "Latency of known-user lookups in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

// Redis key prefix for known-user pairs
const knownUserKeyPrefix = "ku:"

// RedisService is a Redis-backed known-user relation. The contact syncer
// writes pairs through MarkKnown; profile requests only read. Recommended
// for deployments where multiple instances share relationship state.
type RedisService struct {
	client *redis.Client
}

func NewRedisService(client *redis.Client) *RedisService {
	return &RedisService{client: client}
}

func pairKey(ownerID, visitorID string) string {
	return knownUserKeyPrefix + ownerID + ":" + visitorID
}

// MarkKnown records that the visitor is known to the owner.
// The marker value is irrelevant; key existence is what matters.
func (s *RedisService) MarkKnown(ctx context.Context, ownerID, visitorID string) error {
	if ownerID == "" || visitorID == "" {
		return nil
	}
	return s.client.Set(ctx, pairKey(ownerID, visitorID), "1", 0).Err()
}

// Forget removes the relation, typically when a contact is deleted.
func (s *RedisService) Forget(ctx context.Context, ownerID, visitorID string) error {
	return s.client.Del(ctx, pairKey(ownerID, visitorID)).Err()
}

// IsKnownToUser checks whether the pair exists. A missing key means the
// visitor is unknown, not an error.
func (s *RedisService) IsKnownToUser(ctx context.Context, ownerID, visitorID string) (bool, error) {
	start := time.Now()
	defer func() {
		isKnownDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	if ownerID == "" || visitorID == "" {
		return false, nil
	}
	_, err := s.client.Get(ctx, pairKey(ownerID, visitorID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
