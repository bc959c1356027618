package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rateMenu/business/recommend"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const similarityKeyPrefix = "similarity:"

// SimilarityCache stores similarity matrices as JSON under
// "similarity:{fingerprint}" with a fixed TTL.
type SimilarityCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ recommend.SimilarityCache = (*SimilarityCache)(nil)

func NewSimilarityCache(client *redis.Client, ttl time.Duration) *SimilarityCache {
	return &SimilarityCache{
		client: client,
		ttl:    ttl,
	}
}

func similarityKey(fingerprint string) string {
	return similarityKeyPrefix + fingerprint
}

// GetSimilarity reports ok=false without error when the key is absent or expired.
func (c *SimilarityCache) GetSimilarity(ctx context.Context, fingerprint string) (*recommend.SimilarityMatrix, bool, error) {
	val, err := c.client.Get(ctx, similarityKey(fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get similarity from Redis: %w", err)
	}

	var sim recommend.SimilarityMatrix
	if err := json.Unmarshal(val, &sim); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal similarity: %w", err)
	}

	return &sim, true, nil
}

func (c *SimilarityCache) SaveSimilarity(ctx context.Context, fingerprint string, sim *recommend.SimilarityMatrix) error {
	data, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("failed to marshal similarity: %w", err)
	}

	if err := c.client.Set(ctx, similarityKey(fingerprint), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store similarity in Redis: %w", err)
	}

	return nil
}
