// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"whisper_backend/internal/feature/suggestions/usecase"
)

// CachingSuggester decorates a Suggester with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying suggester. Suggestions for the same prompt are
// reused until the TTL elapses, sparing Gemini API quota.
type CachingSuggester struct {
	inner     usecase.Suggester
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingSuggester decorates a Suggester with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "suggestions".
func NewCachingSuggester(rdb *redis.Client, ttl time.Duration, inner usecase.Suggester, namespace string) *CachingSuggester {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "suggestions"
	}
	return &CachingSuggester{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Suggest returns the cached response for the prompt if present,
// falling back to the underlying suggester otherwise.
func (c *CachingSuggester) Suggest(ctx context.Context, prompt string) (string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Suggest(ctx, prompt)
	}

	key := c.cacheKey(prompt)

	// 1) Check cache
	if s, err := c.rdb.Get(ctx, key).Result(); err == nil && s != "" {
		return s, nil
	}

	// 2) Fallback to the underlying suggester
	out, err := c.inner.Suggest(ctx, prompt)
	if err != nil {
		return "", err
	}

	// 3) Store in cache (best effort)
	_ = c.rdb.Set(ctx, key, out, c.ttl).Err()

	return out, nil
}

// cacheKey generates a cache key for a specific prompt.
func (c *CachingSuggester) cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("%s:%s", c.namespace, hex.EncodeToString(sum[:8]))
}
