package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/petfeed/internal/domain"
	logpkg "github.com/kailas-cloud/petfeed/internal/logger"
	healthuc "github.com/kailas-cloud/petfeed/internal/usecase/health"
	"github.com/kailas-cloud/petfeed/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the feed HTTP API.
type Server struct {
	feed          FeedService
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(feed FeedService, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		feed:   feed,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeBadRequest),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, ErrorCodeUnauthorized),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, ErrorCodeNotImplemented),
	}
	return s
}

// Mount registers every route on r. adminKeys guard the admin routes.
func (s *Server) Mount(r chi.Router, adminKeys []string) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/feed", s.GetFeed)
		r.Get("/feed/map", s.GetFeedMap)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(adminKeys))
			r.Post("/admin/reported-cache/invalidate", s.InvalidateReportedCache)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
}

// GetFeed handles GET /api/v1/feed.
func (s *Server) GetFeed(w http.ResponseWriter, r *http.Request) {
	q := parseFeedQuery(r)

	page, err := s.feed.Feed(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, feedPageToDTO(page))
}

// GetFeedMap handles GET /api/v1/feed/map. Cursor is ignored.
func (s *Server) GetFeedMap(w http.ResponseWriter, r *http.Request) {
	q := parseFeedQuery(r)
	q.Cursor = nil

	pins, err := s.feed.MapPins(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pinsToDTO(pins))
}

// InvalidateReportedCache handles POST /api/v1/admin/reported-cache/invalidate.
func (s *Server) InvalidateReportedCache(w http.ResponseWriter, r *http.Request) {
	if err := s.feed.InvalidateReported(r.Context()); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	logpkg.FromContext(r.Context()).Info("reported cache invalidated")
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Get(),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrUnauthorized,
		domain.ErrNotFound,
		domain.ErrNotImplemented,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
