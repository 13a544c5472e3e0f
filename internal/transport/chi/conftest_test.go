package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/petfeed/internal/domain/feed/request"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/result"
	healthuc "github.com/kailas-cloud/petfeed/internal/usecase/health"
)

type mockFeed struct {
	page       result.Page
	pins       []result.Pin
	err        error
	lastQuery  *request.Query
	invalidate int
}

func (m *mockFeed) Feed(_ context.Context, q *request.Query) (result.Page, error) {
	m.lastQuery = q
	return m.page, m.err
}

func (m *mockFeed) MapPins(_ context.Context, q *request.Query) ([]result.Pin, error) {
	m.lastQuery = q
	return m.pins, m.err
}

func (m *mockFeed) InvalidateReported(context.Context) error {
	m.invalidate++
	return m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func newTestRouter(t *testing.T, feed *mockFeed, health *mockHealth) http.Handler {
	t.Helper()
	if health == nil {
		health = &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}}
	}
	r := chi.NewRouter()
	NewServer(feed, health, zap.NewNop()).Mount(r, []string{"admin-key"})
	return r
}

func do(t *testing.T, h http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
