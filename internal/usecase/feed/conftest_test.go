package feed

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/petfeed/internal/domain/feed/filter"
	"github.com/kailas-cloud/petfeed/internal/domain/listing"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// mockListings implements ListingReader. Zero value serves an empty pool.
type mockListings struct {
	mu sync.Mutex

	candidates []listing.Candidate
	favorites  map[string]int
	preference *listing.Preference
	affinity   listing.Affinity
	photoKeys  map[string][]string

	fetchErr, favoritesErr, preferenceErr, affinityErr, photosErr error

	gotFilter     filter.Filter
	gotExclusions filter.Exclusions
	gotLimit      int
	favoriteCalls int
	preferenceFor []string
}

func (m *mockListings) FetchCandidates(
	_ context.Context, f filter.Filter, ex filter.Exclusions, limit int,
) ([]listing.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gotFilter, m.gotExclusions, m.gotLimit = f, ex, limit
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	out := make([]listing.Candidate, len(m.candidates))
	copy(out, m.candidates)
	return out, nil
}

func (m *mockListings) FavoriteCounts(_ context.Context, _ []string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favoriteCalls++
	if m.favoritesErr != nil {
		return nil, m.favoritesErr
	}
	return m.favorites, nil
}

func (m *mockListings) Preference(_ context.Context, userID string) (*listing.Preference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preferenceFor = append(m.preferenceFor, userID)
	return m.preference, m.preferenceErr
}

func (m *mockListings) FavoriteAffinity(_ context.Context, _ string) (listing.Affinity, error) {
	return m.affinity, m.affinityErr
}

func (m *mockListings) PhotoKeys(_ context.Context, _ []string) (map[string][]string, error) {
	if m.photosErr != nil {
		return nil, m.photosErr
	}
	return m.photoKeys, nil
}

type mockReported struct {
	ids         []string
	err         error
	invalidated bool
}

func (m *mockReported) ReportedIDs(_ context.Context) ([]string, error) {
	return m.ids, m.err
}

func (m *mockReported) Invalidate(_ context.Context) error {
	m.invalidated = true
	return m.err
}

type mockBlocks struct {
	blocked, blockedBy []string
	err                error
	calls              int
	mu                 sync.Mutex
}

func (m *mockBlocks) BlockedOwnerIDs(_ context.Context, _ string) ([]string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.blocked, m.err
}

func (m *mockBlocks) BlockedByOwnerIDs(_ context.Context, _ string) ([]string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.blockedBy, nil
}

type mockSwipes struct {
	ids   []string
	err   error
	calls int
}

func (m *mockSwipes) SwipedIDs(_ context.Context, _ string) ([]string, error) {
	m.calls++
	return m.ids, m.err
}

type mockVerifications struct {
	verified map[string]bool
	err      error
}

func (m *mockVerifications) VerifiedListingIDs(_ context.Context, _ []string) (map[string]bool, error) {
	return m.verified, m.err
}

type mockPhotos struct {
	failKey string
}

func (m *mockPhotos) URL(_ context.Context, key string) (string, error) {
	if key == m.failKey {
		return "", context.DeadlineExceeded
	}
	return "https://cdn.test/" + key, nil
}

type testDeps struct {
	listings      *mockListings
	reported      *mockReported
	blocks        *mockBlocks
	swipes        *mockSwipes
	verifications *mockVerifications
}

func newTestService() (*Service, *testDeps) {
	d := &testDeps{
		listings:      &mockListings{},
		reported:      &mockReported{},
		blocks:        &mockBlocks{},
		swipes:        &mockSwipes{},
		verifications: &mockVerifications{},
	}
	svc := New(d.listings, d.reported, d.blocks, d.swipes, d.verifications).
		WithClock(func() time.Time { return testNow })
	return svc, d
}

func f64(v float64) *float64 { return &v }

// candidate returns an eligible dog at (lat, 0) created daysAgo before testNow.
func candidate(id string, lat float64, daysAgo int) listing.Candidate {
	return listing.Candidate{
		ID:               id,
		Name:             "pet " + id,
		OwnerID:          "owner-" + id,
		Species:          "dog",
		Size:             listing.SizeMedium,
		Latitude:         f64(lat),
		Longitude:        f64(0),
		CreatedAt:        testNow.AddDate(0, 0, -daysAgo),
		Status:           listing.StatusAvailable,
		ModerationStatus: listing.ModerationApproved,
	}
}
