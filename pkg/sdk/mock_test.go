package petfeed

import (
	"context"

	"github.com/kailas-cloud/petfeed/internal/domain/feed/request"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/result"
	healthuc "github.com/kailas-cloud/petfeed/internal/usecase/health"
)

// --- feedUseCase mock ---

type mockFeedUC struct {
	feedFn       func(ctx context.Context, q *request.Query) (result.Page, error)
	mapFn        func(ctx context.Context, q *request.Query) ([]result.Pin, error)
	invalidateFn func(ctx context.Context) error
}

func (m *mockFeedUC) Feed(ctx context.Context, q *request.Query) (result.Page, error) {
	return m.feedFn(ctx, q)
}

func (m *mockFeedUC) MapPins(ctx context.Context, q *request.Query) ([]result.Pin, error) {
	return m.mapFn(ctx, q)
}

func (m *mockFeedUC) InvalidateReported(ctx context.Context) error {
	return m.invalidateFn(ctx)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(feedSvc feedUseCase) *Client {
	return &Client{feedSvc: feedSvc}
}
