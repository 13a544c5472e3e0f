package reportcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/petfeed/internal/db"
)

const (
	sharedKey     = "petfeed:reported_ids"
	generationKey = "petfeed:reported_ids:generation"
	generationTTL = 24 * time.Hour
)

// dataKey is the entry key for a generation. Entries written under an older
// generation are never read again and expire on their own TTL.
func dataKey(gen string) string {
	if gen == "" {
		return sharedKey
	}
	return sharedKey + ":" + gen
}

// store is the consumer interface for the shared cache backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Shared keeps the set in a key-value store so every replica sees one invalidation.
// Backend failures fall back to the loader; they never yield an empty set.
type Shared struct {
	loader     loader
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// NewShared creates a cache-aside wrapper over s.
func NewShared(l loader, s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Shared {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Shared{
		loader:     l,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// ReportedIDs returns the cached set or loads and stores it.
// The set is cached under the generation read before loading, so a load that
// races with Invalidate lands in a key no reader uses.
func (c *Shared) ReportedIDs(ctx context.Context) ([]string, error) {
	gen, cacheable := c.generation(ctx)
	if cacheable {
		if ids, ok := c.getFromCache(ctx, dataKey(gen)); ok {
			inc(c.cacheTotal, resultHit)
			return ids, nil
		}
	}
	inc(c.cacheTotal, resultMiss)

	ids, err := c.loader.ReportedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reported ids: %w", err)
	}

	if cacheable {
		c.putToCache(ctx, dataKey(gen), ids)
	}
	return ids, nil
}

// Invalidate moves every replica to a new generation.
func (c *Shared) Invalidate(ctx context.Context) error {
	gen := uuid.NewString()
	if err := c.store.SetWithTTL(ctx, generationKey, []byte(gen), generationTTL); err != nil {
		return fmt.Errorf("invalidate reported ids: %w", err)
	}
	c.logger.Info("Reported ids cache invalidated",
		zap.String("backend", "shared"),
		zap.String("generation", gen),
	)
	return nil
}

// generation reads the current generation. A missing key is the initial one.
// When the backend fails the cache is bypassed for this call.
func (c *Shared) generation(ctx context.Context) (string, bool) {
	data, err := c.store.Get(ctx, generationKey)
	switch {
	case err == nil:
		return string(data), true
	case errors.Is(err, db.ErrKeyNotFound):
		return "", true
	default:
		inc(c.cacheTotal, resultError)
		c.logger.Warn("Failed to get reported ids generation", zap.Error(err))
		return "", false
	}
}

func (c *Shared) getFromCache(ctx context.Context, key string) ([]string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			inc(c.cacheTotal, resultError)
			c.logger.Warn("Failed to get cached reported ids", zap.Error(err))
		}
		return nil, false
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		inc(c.cacheTotal, resultError)
		c.logger.Warn("Failed to parse cached reported ids", zap.Error(err))
		return nil, false
	}
	return ids, true
}

func (c *Shared) putToCache(ctx context.Context, key string, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		c.logger.Warn("Failed to encode reported ids", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		inc(c.cacheTotal, resultError)
		c.logger.Warn("Failed to cache reported ids", zap.Error(err))
	}
}
