package reportcache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/petfeed/internal/db"
)

type mockLoader struct {
	mu    sync.Mutex
	ids   []string
	err   error
	calls atomic.Int32

	// gate, when set, holds the first call until closed; started is closed on entry.
	gate    chan struct{}
	started chan struct{}
}

func (m *mockLoader) ReportedIDs(_ context.Context) ([]string, error) {
	n := m.calls.Add(1)
	m.mu.Lock()
	ids, err := m.ids, m.err
	m.mu.Unlock()
	if n == 1 && m.gate != nil {
		close(m.started)
		<-m.gate
	}
	return ids, err
}

func (m *mockLoader) set(ids []string) {
	m.mu.Lock()
	m.ids = ids
	m.mu.Unlock()
}

// newGatedLoader returns a loader whose first call blocks until the gate is closed.
func newGatedLoader(ids []string) *mockLoader {
	return &mockLoader{ids: ids, gate: make(chan struct{}), started: make(chan struct{})}
}

// mockKVStore is an in-memory consumer store. getFn/setFn override it when set.
type mockKVStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	ttls  map[string]time.Duration
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
		m.ttls = map[string]time.Duration{}
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockKVStore) value(key string) (string, time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return string(v), m.ttls[key], ok
}

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_reported_cache_total",
		Help: "test",
	}, []string{"result"})
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
