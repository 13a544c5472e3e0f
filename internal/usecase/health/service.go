package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the feed still serves but a shared component is down.
	Degraded Status = "degraded"
	// Unhealthy indicates the feed cannot serve.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

const checkTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db    Pinger
	cache Pinger
}

// New creates a Service. cache is nil when the reported ids cache is process-local.
func New(db, cache Pinger) *Service {
	return &Service{db: db, cache: cache}
}

// Check pings every component. The listing database is critical: without it no feed
// can be built. The shared cache is not, reads fall back to the database.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	checks := map[string]CheckResult{"database": ping(ctx, s.db)}
	if s.cache != nil {
		checks["cache"] = ping(ctx, s.cache)
	}

	status := Healthy
	switch {
	case checks["database"] == CheckError:
		status = Unhealthy
	case checks["cache"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func ping(ctx context.Context, p Pinger) CheckResult {
	if err := p.Ping(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
