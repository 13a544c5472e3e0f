package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/kailas-cloud/petfeed/internal/domain"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/cursor"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/result"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/score"
	"github.com/kailas-cloud/petfeed/internal/domain/listing"
	healthuc "github.com/kailas-cloud/petfeed/internal/usecase/health"
)

func TestGetFeed_EmptyPool(t *testing.T) {
	feed := &mockFeed{page: result.Page{Items: []result.Item{}}}
	rr := do(t, newTestRouter(t, feed, nil), "GET", "/api/v1/feed", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"items":[],"nextCursor":null}` {
		t.Errorf("body = %s", got)
	}
}

func TestGetFeed_ItemsAndCursor(t *testing.T) {
	dist := 5.0
	next := cursor.New(0.4583333333, "b")
	feed := &mockFeed{page: result.Page{
		Items: []result.Item{
			{
				Listing: listing.Candidate{
					ID: "b", Name: "Rex", AgeMonths: 14, Species: "dog", Breed: "Beagle",
					Size: listing.SizeMedium, Sex: listing.SexMale, GoodWithChildren: true,
				},
				Score:      score.Breakdown{Total: 0.4583333333},
				DistanceKm: &dist,
				Verified:   true,
				PhotoURLs:  []string{"https://cdn/p1.jpg"},
			},
			{Listing: listing.Candidate{ID: "a", Name: "Tom", Species: "cat"}},
		},
		NextCursor: &next,
	}}

	rr := do(t, newTestRouter(t, feed, nil), "GET", "/api/v1/feed", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp FeedResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(resp.Items))
	}
	first := resp.Items[0]
	if first.ID != "b" || !first.Verified || first.DistanceKm == nil || *first.DistanceKm != 5 {
		t.Errorf("first item = %+v", first)
	}
	if first.Size != "medium" || first.Sex != "male" || !first.Attributes.GoodWithChildren {
		t.Errorf("first item attributes = %+v", first)
	}
	if resp.Items[1].DistanceKm != nil {
		t.Error("distance must be omitted when not computed")
	}
	if resp.Items[1].PhotoURLs == nil {
		t.Error("photoUrls must be an empty array, not null")
	}
	if resp.NextCursor == nil || *resp.NextCursor != "0.4583333333_b" {
		t.Errorf("nextCursor = %v", resp.NextCursor)
	}
}

func TestGetFeed_PassesQuery(t *testing.T) {
	feed := &mockFeed{page: result.Page{Items: []result.Item{}}}
	target := "/api/v1/feed?lat=40.7&lng=-74&radiusKm=25&species=Dog&size=huge&sex=FEMALE" +
		"&goodWithCats=true&cursor=0.5000000000_abc"
	rr := do(t, newTestRouter(t, feed, nil), "GET", target,
		map[string]string{RequesterHeader: "6F9619FF-8B86-D011-B42D-00C04FC964FF"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	q := feed.lastQuery
	if q.RequesterID != "6f9619ff-8b86-d011-b42d-00c04fc964ff" {
		t.Errorf("requester = %q", q.RequesterID)
	}
	if q.Origin == nil || q.Origin.Lat != 40.7 || q.Origin.Lng != -74 {
		t.Errorf("origin = %+v", q.Origin)
	}
	if q.RadiusKm != 25 {
		t.Errorf("radius = %v", q.RadiusKm)
	}
	if q.Filter.Species != "Dog" || q.Filter.Size != "" || q.Filter.Sex != listing.SexFemale {
		t.Errorf("filter = %+v", q.Filter)
	}
	if q.Filter.GoodWithCats == nil || !*q.Filter.GoodWithCats {
		t.Error("goodWithCats not bound")
	}
	if q.Cursor == nil || q.Cursor.ID != "abc" || q.Cursor.Score != 0.5 {
		t.Errorf("cursor = %+v", q.Cursor)
	}
}

func TestGetFeed_CollaboratorFailure(t *testing.T) {
	feed := &mockFeed{err: fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, errors.New("pq: connection refused"))}
	rr := do(t, newTestRouter(t, feed, nil), "GET", "/api/v1/feed", nil)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != ErrorCodeInternalError || resp.Message != "internal error" {
		t.Errorf("error = %+v", resp)
	}
}

func TestGetFeed_SentinelMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
		code ErrorCode
	}{
		{fmt.Errorf("wrap: %w", domain.ErrInvalidRequest), http.StatusBadRequest, ErrorCodeBadRequest},
		{domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound},
		{domain.ErrNotImplemented, http.StatusNotImplemented, ErrorCodeNotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rr := do(t, newTestRouter(t, &mockFeed{err: tt.err}, nil), "GET", "/api/v1/feed", nil)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %s, want %s", resp.Code, tt.code)
			}
		})
	}
}

func TestGetFeedMap(t *testing.T) {
	feed := &mockFeed{pins: []result.Pin{
		{ID: "p1", Name: "Rex", AgeMonths: 3, Species: "dog", Latitude: 1, Longitude: 2, PhotoURL: "https://cdn/p.jpg"},
		{ID: "p0", Name: "Tom", Species: "cat", Latitude: 3, Longitude: 4},
	}}
	rr := do(t, newTestRouter(t, feed, nil), "GET", "/api/v1/feed/map?cursor=0.5_x", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if feed.lastQuery.Cursor != nil {
		t.Error("map view must ignore the cursor")
	}

	var resp MapResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(resp.Items))
	}
	if resp.Items[0].PhotoURL == nil || *resp.Items[0].PhotoURL != "https://cdn/p.jpg" {
		t.Errorf("pin photo = %v", resp.Items[0].PhotoURL)
	}
	if resp.Items[1].PhotoURL != nil {
		t.Error("missing photo must be null")
	}
}

func TestInvalidateReportedCache(t *testing.T) {
	feed := &mockFeed{}
	h := newTestRouter(t, feed, nil)

	rr := do(t, h, "POST", "/api/v1/admin/reported-cache/invalidate", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("without key: status = %d, want 401", rr.Code)
	}

	rr = do(t, h, "POST", "/api/v1/admin/reported-cache/invalidate",
		map[string]string{"Authorization": "Bearer admin-key"})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("with key: status = %d, want 204", rr.Code)
	}
	if feed.invalidate != 1 {
		t.Errorf("invalidate calls = %d, want 1", feed.invalidate)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		status healthuc.Status
		want   int
	}{
		{healthuc.Healthy, http.StatusOK},
		{healthuc.Degraded, http.StatusOK},
		{healthuc.Unhealthy, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			health := &mockHealth{report: healthuc.Report{
				Status: tt.status,
				Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
			}}
			rr := do(t, newTestRouter(t, &mockFeed{}, health), "GET", "/health", nil)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Status != string(tt.status) || resp.Checks["database"] != "ok" {
				t.Errorf("resp = %+v", resp)
			}
		})
	}
}

func TestNotFoundRoute(t *testing.T) {
	rr := do(t, newTestRouter(t, &mockFeed{}, nil), "GET", "/api/v1/nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
