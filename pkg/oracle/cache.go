package oracle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/zen-systems/tiergate/pkg/judgment"
)

const cacheMaxCost = 1 << 20 // ~1MB of cached judgments

// CachedClassifier wraps a Classifier with a short-TTL in-process cache so
// repeated prompts are not reclassified. Failures (nil judgments) are never
// cached: a recovered oracle should be asked again on the next request.
type CachedClassifier struct {
	inner Classifier
	cache *ristretto.Cache[string, *judgment.Judgment]
	ttl   time.Duration
}

// NewCachedClassifier creates a caching decorator around inner.
func NewCachedClassifier(inner Classifier, ttl time.Duration) (*CachedClassifier, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *judgment.Judgment]{
		NumCounters: 10_000,
		MaxCost:     cacheMaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachedClassifier{inner: inner, cache: cache, ttl: ttl}, nil
}

// Classify returns the cached judgment for the prompt when present, otherwise
// delegates to the wrapped classifier and caches a non-nil result.
func (c *CachedClassifier) Classify(ctx context.Context, prompt string) *judgment.Judgment {
	key := promptKey(prompt)
	if j, ok := c.cache.Get(key); ok {
		return j
	}

	j := c.inner.Classify(ctx, prompt)
	if j != nil {
		c.cache.SetWithTTL(key, j, 1, c.ttl)
		c.cache.Wait()
	}
	return j
}

// Close releases cache resources.
func (c *CachedClassifier) Close() {
	c.cache.Close()
}

func promptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
