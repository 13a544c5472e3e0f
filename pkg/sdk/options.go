package petfeed

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "postgres" or "sqlite"
	dsn       string
	bootstrap bool

	redisAddr     string
	redisPassword string

	photoBaseURL string

	poolSize        int
	pageSize        int
	defaultRadiusKm float64
	reportedTTL     time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPostgres reads listings from a Postgres database.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "postgres"
		c.dsn = dsn
	})
}

// WithSQLite reads listings from a SQLite file. An empty path opens an in-memory database.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sqlite"
		c.dsn = path
	})
}

// WithSchemaBootstrap creates the SQLite tables on open.
func WithSchemaBootstrap() Option {
	return optionFunc(func(c *clientConfig) {
		c.bootstrap = true
	})
}

// WithRedis shares the reported listings cache through Redis.
// Without it the cache is process-local.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddr = addr
		c.redisPassword = password
	})
}

// WithPhotoBaseURL turns photo storage keys into URLs under baseURL.
// Without it items carry no photo URLs.
func WithPhotoBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.photoBaseURL = baseURL
	})
}

// WithCandidatePoolSize caps the candidates ranked per request. Default: 500.
func WithCandidatePoolSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.poolSize = n
	})
}

// WithPageSize sets the items per page. Default: 20.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithDefaultRadius sets the radius used when neither request nor preference has one.
// Default: 50 km.
func WithDefaultRadius(km float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultRadiusKm = km
	})
}

// WithReportedCacheTTL sets how long the reported listings set is reused. Default: 2m.
func WithReportedCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.reportedTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
