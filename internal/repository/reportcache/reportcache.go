// Package reportcache caches the global set of reported listing ids.
//
// The set is shared by every feed request and changes only when a report is filed
// or resolved, so it is loaded at most once per TTL and dropped on Invalidate.
package reportcache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// DefaultTTL bounds how stale the reported set may get without an invalidation.
const DefaultTTL = 120 * time.Second

// Cache results for the "result" label.
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// loader is the reporting collaborator (ISP).
type loader interface {
	ReportedIDs(ctx context.Context) ([]string, error)
}

type entry struct {
	ids        []string
	expires    time.Time
	generation uint64
}

// Memory is a process-local cache. Invalidate only affects this replica.
type Memory struct {
	loader     loader
	ttl        time.Duration
	now        func() time.Time
	current    atomic.Pointer[entry]
	generation atomic.Uint64
	loadMu     sync.Mutex
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// NewMemory creates a process-local cache.
// cacheTotal is a counter vec with label "result", passed explicitly (nil disables it).
func NewMemory(l loader, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		loader:     l,
		ttl:        ttl,
		now:        time.Now,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// WithClock replaces the clock (tests).
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

// ReportedIDs returns the cached set, reloading it once expired.
// The returned slice is shared and must not be modified.
func (m *Memory) ReportedIDs(ctx context.Context) ([]string, error) {
	if ids, ok := m.fresh(); ok {
		inc(m.cacheTotal, resultHit)
		return ids, nil
	}

	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	// another request may have reloaded while we waited
	if ids, ok := m.fresh(); ok {
		inc(m.cacheTotal, resultHit)
		return ids, nil
	}
	inc(m.cacheTotal, resultMiss)

	gen := m.generation.Load()
	ids, err := m.loader.ReportedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reported ids: %w", err)
	}
	// an Invalidate during the load makes this set stale already
	if m.generation.Load() == gen {
		m.current.Store(&entry{ids: ids, expires: m.now().Add(m.ttl), generation: gen})
	}
	return ids, nil
}

func (m *Memory) fresh() ([]string, bool) {
	e := m.current.Load()
	if e == nil || e.generation != m.generation.Load() || !m.now().Before(e.expires) {
		return nil, false
	}
	return e.ids, true
}

// Invalidate drops the cached set; the next read reloads it.
// Loads already in flight return their result without caching it.
func (m *Memory) Invalidate(_ context.Context) error {
	m.generation.Add(1)
	m.current.Store(nil)
	m.logger.Info("Reported ids cache invalidated", zap.String("backend", "memory"))
	return nil
}

func inc(c *prometheus.CounterVec, result string) {
	if c != nil {
		c.WithLabelValues(result).Inc()
	}
}
