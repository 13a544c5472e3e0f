package chi

import (
	"context"

	"github.com/kailas-cloud/petfeed/internal/domain/feed/request"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/result"
	healthuc "github.com/kailas-cloud/petfeed/internal/usecase/health"
)

// FeedService serves the ranked feed and the map view.
type FeedService interface {
	Feed(ctx context.Context, q *request.Query) (result.Page, error)
	MapPins(ctx context.Context, q *request.Query) ([]result.Pin, error)
	InvalidateReported(ctx context.Context) error
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
