package petfeed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/petfeed/internal/db"
	dbRedis "github.com/kailas-cloud/petfeed/internal/db/redis"
	"github.com/kailas-cloud/petfeed/internal/db/sqlstore"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/request"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/result"
	"github.com/kailas-cloud/petfeed/internal/metrics"
	listingrepo "github.com/kailas-cloud/petfeed/internal/repository/listing"
	moderationrepo "github.com/kailas-cloud/petfeed/internal/repository/moderation"
	"github.com/kailas-cloud/petfeed/internal/repository/photo"
	"github.com/kailas-cloud/petfeed/internal/repository/reportcache"
	swiperepo "github.com/kailas-cloud/petfeed/internal/repository/swipe"
	feeduc "github.com/kailas-cloud/petfeed/internal/usecase/feed"
	healthuc "github.com/kailas-cloud/petfeed/internal/usecase/health"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultReportedTTL      = reportcache.DefaultTTL
)

// feedUseCase is the internal interface for the feed engine.
type feedUseCase interface {
	Feed(ctx context.Context, q *request.Query) (result.Page, error)
	MapPins(ctx context.Context, q *request.Query) ([]result.Pin, error)
	InvalidateReported(ctx context.Context) error
}

// Client is the embedded feed entry point.
type Client struct {
	database  *sqlstore.DB
	cache     db.Store
	feedSvc   feedUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New opens the listings database and wires the feed engine.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{reportedTTL: defaultReportedTTL}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("petfeed: database required (use WithPostgres or WithSQLite)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	database, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver:    cfg.driver,
		DSN:       cfg.dsn,
		Bootstrap: cfg.bootstrap,
	})
	if err != nil {
		return nil, fmt.Errorf("petfeed: open database: %w", err)
	}
	if err := database.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		database.Close()
		return nil, fmt.Errorf("petfeed: database not ready: %w", err)
	}

	c := &Client{database: database, obs: obs}
	if cfg.redisAddr != "" {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    []string{cfg.redisAddr},
			Password: cfg.redisPassword,
		})
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("petfeed: create redis store: %w", err)
		}
		c.cache = cache
	}

	c.wire(cfg)
	return c, nil
}

func (c *Client) wire(cfg *clientConfig) {
	listings := listingrepo.New(c.database)
	moderation := moderationrepo.New(c.database)

	var reported feeduc.ReportedCache
	if c.cache != nil {
		reported = reportcache.NewShared(moderation, c.cache, cfg.reportedTTL, metrics.FeedReportedCacheTotal, zap.NewNop())
	} else {
		reported = reportcache.NewMemory(moderation, cfg.reportedTTL, metrics.FeedReportedCacheTotal, zap.NewNop())
	}

	svc := feeduc.New(listings, reported, moderation, swiperepo.NewSQL(c.database), moderation).
		WithLimits(cfg.poolSize, cfg.pageSize, cfg.defaultRadiusKm)
	if cfg.photoBaseURL != "" {
		svc = svc.WithPhotos(photo.NewPublicResolver(cfg.photoBaseURL))
	}
	c.feedSvc = svc

	// Pass a nil interface, not a typed nil pointer, when there is no cache.
	var cachePinger healthuc.Pinger
	if c.cache != nil {
		cachePinger = c.cache
	}
	c.healthSvc = healthuc.New(c.database, cachePinger)
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.database != nil {
		c.database.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.database.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Feed returns one page of the ranked feed.
func (c *Client) Feed(ctx context.Context, req FeedRequest) (page FeedPage, err error) {
	start := time.Now()
	defer func() {
		c.obs.observe("feed", start, err, "items", len(page.Items), "anonymous", req.RequesterID == "")
	}()

	p, err := c.feedSvc.Feed(ctx, toQuery(&req))
	if err != nil {
		return FeedPage{}, fmt.Errorf("feed: %w", err)
	}
	return pageFromResult(p), nil
}

// Map returns every matching listing with coordinates, unranked and unpaginated.
// req.Cursor is ignored.
func (c *Client) Map(ctx context.Context, req FeedRequest) (pins []Pin, err error) {
	start := time.Now()
	defer func() { c.obs.observe("map", start, err, "pins", len(pins)) }()

	q := toQuery(&req)
	q.Cursor = nil
	res, err := c.feedSvc.MapPins(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("map: %w", err)
	}

	pins = make([]Pin, len(res))
	for i, p := range res {
		pins[i] = Pin(p)
	}
	return pins, nil
}

// InvalidateReported drops the cached reported listings so the next request reloads them.
// Call it after a report is filed or resolved.
func (c *Client) InvalidateReported(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("invalidate_reported", start, err) }()

	if err = c.feedSvc.InvalidateReported(ctx); err != nil {
		return fmt.Errorf("invalidate reported: %w", err)
	}
	return nil
}
