package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/petfeed/internal/config"
	"github.com/kailas-cloud/petfeed/internal/db"
	dbRedis "github.com/kailas-cloud/petfeed/internal/db/redis"
	"github.com/kailas-cloud/petfeed/internal/db/sqlstore"
	logpkg "github.com/kailas-cloud/petfeed/internal/logger"
	"github.com/kailas-cloud/petfeed/internal/metrics"
	listingrepo "github.com/kailas-cloud/petfeed/internal/repository/listing"
	moderationrepo "github.com/kailas-cloud/petfeed/internal/repository/moderation"
	"github.com/kailas-cloud/petfeed/internal/repository/photo"
	"github.com/kailas-cloud/petfeed/internal/repository/reportcache"
	swiperepo "github.com/kailas-cloud/petfeed/internal/repository/swipe"
	chiTransport "github.com/kailas-cloud/petfeed/internal/transport/chi"
	feeduc "github.com/kailas-cloud/petfeed/internal/usecase/feed"
	healthuc "github.com/kailas-cloud/petfeed/internal/usecase/health"
	"github.com/kailas-cloud/petfeed/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting "+version.String(),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.String("swipes_driver", cfg.Swipes.Driver),
	)

	ctx := context.Background()

	database, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver:         cfg.Database.Driver,
		DSN:            cfg.Database.DSN,
		MaxConns:       cfg.Database.MaxConns,
		SimpleProtocol: cfg.Database.SimpleProtocol,
		Bootstrap:      cfg.Database.Bootstrap,
	})
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer database.Close()

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := database.WaitForReady(ctx, readiness); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register feed metrics explicitly (no init())
	metrics.RegisterFeedMetrics()

	listings := listingrepo.New(database)
	moderation := moderationrepo.New(database)

	// Reported ids cache: process-local or shared across replicas
	reportedTTL := time.Duration(cfg.Feed.ReportedCacheTTLSec) * time.Second
	var (
		reported  feeduc.ReportedCache
		cacheDeps healthuc.Pinger // stays a nil interface for the memory backend
	)
	switch cfg.Cache.Driver {
	case "redis":
		var cache db.Store
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()
		if err := cache.WaitForReady(ctx, readiness); err != nil {
			logger.Warn("Cache not ready, reads fall back to the database", zap.Error(err))
		}
		reported = reportcache.NewShared(moderation, cache, reportedTTL, metrics.FeedReportedCacheTotal, logger)
		cacheDeps = cache
	default:
		reported = reportcache.NewMemory(moderation, reportedTTL, metrics.FeedReportedCacheTotal, logger)
	}

	swipes, err := buildSwipes(ctx, cfg.Swipes, database)
	if err != nil {
		logger.Fatal("Failed to create swipe store", zap.Error(err))
	}

	feedSvc := feeduc.New(listings, reported, moderation, swipes, moderation).
		WithLimits(cfg.Feed.CandidatePoolSize, cfg.Feed.PageSize, cfg.Feed.DefaultRadiusKm)

	if cfg.Photos.Enabled() {
		resolver, err := photo.New(ctx, photo.Config{
			Bucket:        cfg.Photos.Bucket,
			Region:        cfg.Photos.Region,
			PresignTTL:    time.Duration(cfg.Photos.PresignTTLSec) * time.Second,
			PublicBaseURL: cfg.Photos.PublicBaseURL,
		})
		if err != nil {
			logger.Fatal("Failed to create photo resolver", zap.Error(err))
		}
		feedSvc = feedSvc.WithPhotos(resolver)
	}

	healthSvc := healthuc.New(database, cacheDeps)

	server := chiTransport.NewServer(feedSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(chiMiddleware.Timeout(time.Duration(cfg.Feed.RequestTimeoutSec) * time.Second))
	r.Use(metrics.Middleware(chiTransport.RequesterKind))
	server.Mount(r, cfg.Auth.AdminAPIKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildSwipes picks the swipe store. The sql driver reads the listings database.
func buildSwipes(ctx context.Context, cfg config.SwipesConfig, database *sqlstore.DB) (feeduc.SwipeReader, error) {
	switch cfg.Driver {
	case "dynamodb":
		client, err := swiperepo.NewDynamoClient(ctx, swiperepo.DynamoConfig{
			Table:    cfg.Table,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("dynamodb client: %w", err)
		}
		return swiperepo.NewDynamo(client, cfg.Table), nil
	default:
		return swiperepo.NewSQL(database), nil
	}
}
