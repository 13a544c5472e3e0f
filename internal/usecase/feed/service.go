// Package feed builds the ranked, cursor-paginated discovery feed.
//
// Per request: resolve exclusions and requester context, fetch one bounded candidate
// pool, count favorites in one query, score, apply the radius, sort, cut a page and
// enrich only that page. Nothing is cached between requests except the reported set.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/petfeed/internal/domain"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/filter"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/page"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/request"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/result"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/score"
	"github.com/kailas-cloud/petfeed/internal/domain/geo"
	"github.com/kailas-cloud/petfeed/internal/domain/listing"
	"github.com/kailas-cloud/petfeed/internal/metrics"
)

// DefaultCandidatePoolSize caps the candidate query.
const DefaultCandidatePoolSize = 500

// Service builds feed pages and map pins.
type Service struct {
	listings      ListingReader
	reported      ReportedCache
	blocks        BlockReader
	swipes        SwipeReader
	verifications VerificationReader
	photos        PhotoURLResolver

	now           func() time.Time
	poolSize      int
	pageSize      int
	defaultRadius float64
}

// New creates a feed service.
func New(
	listings ListingReader,
	reported ReportedCache,
	blocks BlockReader,
	swipes SwipeReader,
	verifications VerificationReader,
) *Service {
	return &Service{
		listings:      listings,
		reported:      reported,
		blocks:        blocks,
		swipes:        swipes,
		verifications: verifications,
		now:           time.Now,
		poolSize:      DefaultCandidatePoolSize,
		pageSize:      page.DefaultSize,
		defaultRadius: request.DefaultRadiusKm,
	}
}

// WithPhotos enables photo URLs on served items.
func (s *Service) WithPhotos(r PhotoURLResolver) *Service {
	s.photos = r
	return s
}

// WithClock replaces the clock used for recency.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithLimits overrides pool size, page size and the fallback radius. Non-positive values keep defaults.
func (s *Service) WithLimits(poolSize, pageSize int, defaultRadiusKm float64) *Service {
	if poolSize > 0 {
		s.poolSize = poolSize
	}
	if pageSize > 0 {
		s.pageSize = pageSize
	}
	if defaultRadiusKm > 0 {
		s.defaultRadius = defaultRadiusKm
	}
	return s
}

// Feed returns one page of the ranked feed for q.
func (s *Service) Feed(ctx context.Context, q *request.Query) (result.Page, error) {
	q.Filter = q.Filter.Normalize()

	in, err := s.resolveInputs(ctx, q)
	if err != nil {
		return result.Page{}, err
	}

	candidates, err := s.fetchCandidates(ctx, q.Filter, in.exclusions)
	if err != nil {
		return result.Page{}, err
	}
	if len(candidates) == 0 {
		return result.Page{Items: []result.Item{}}, nil
	}

	favorites, err := s.favoriteCounts(ctx, candidates)
	if err != nil {
		return result.Page{}, err
	}

	rankStart := time.Now()
	items := s.rank(q, &in, candidates, favorites)
	page.Sort(items)
	p := page.Slice(items, q.Cursor, s.pageSize)
	observeStage("rank", rankStart)

	s.enrich(ctx, p.Items)
	return p, nil
}

// rank scores every non-excluded candidate, then drops those outside the radius.
func (s *Service) rank(
	q *request.Query, in *inputs, candidates []listing.Candidate, favorites map[string]int,
) []result.Item {
	scorer := score.New(q.Target(in.preference), in.affinity, s.now())

	items := make([]result.Item, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if in.excluded.Excludes(c) {
			continue
		}
		dist := distanceTo(q.Origin, c)
		items = append(items, result.Item{
			Listing:    *c,
			Score:      scorer.Score(c, dist, favorites[c.ID]),
			DistanceKm: dist,
		})
	}
	return withinRadius(items, q.EffectiveRadius(in.preference, s.defaultRadius))
}

// withinRadius filters items in place. Items without a distance are kept.
func withinRadius(items []result.Item, radiusKm float64) []result.Item {
	kept := items[:0]
	for _, it := range items {
		if it.DistanceKm != nil && *it.DistanceKm > radiusKm {
			continue
		}
		kept = append(kept, it)
	}
	return kept
}

// distanceTo is nil unless both the requester and the candidate have coordinates.
func distanceTo(origin *geo.Point, c *listing.Candidate) *float64 {
	if origin == nil || !c.HasCoordinates() {
		return nil
	}
	d := geo.HaversineKm(origin.Lat, origin.Lng, *c.Latitude, *c.Longitude)
	return &d
}

func (s *Service) fetchCandidates(
	ctx context.Context, f filter.Filter, ex filter.Exclusions,
) ([]listing.Candidate, error) {
	defer observeStage("candidates", time.Now())

	candidates, err := s.listings.FetchCandidates(ctx, f, ex, s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	metrics.FeedCandidatePoolSize.Observe(float64(len(candidates)))
	return candidates, nil
}

func (s *Service) favoriteCounts(ctx context.Context, candidates []listing.Candidate) (map[string]int, error) {
	defer observeStage("engagement", time.Now())

	ids := make([]string, len(candidates))
	for i := range candidates {
		ids[i] = candidates[i].ID
	}
	counts, err := s.listings.FavoriteCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	return counts, nil
}

// MapPins returns every eligible listing with coordinates, for the map view.
// Same hard filters, exclusions and radius as Feed; no scoring, no pagination.
func (s *Service) MapPins(ctx context.Context, q *request.Query) ([]result.Pin, error) {
	q.Filter = q.Filter.Normalize()

	in, err := s.resolveInputs(ctx, q)
	if err != nil {
		return nil, err
	}

	candidates, err := s.fetchCandidates(ctx, q.Filter, in.exclusions)
	if err != nil {
		return nil, err
	}

	radius := q.EffectiveRadius(in.preference, s.defaultRadius)
	kept := make([]listing.Candidate, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if !c.HasCoordinates() || in.excluded.Excludes(c) {
			continue
		}
		if d := distanceTo(q.Origin, c); d != nil && *d > radius {
			continue
		}
		kept = append(kept, *c)
	}

	photos := s.firstPhotos(ctx, kept)
	pins := make([]result.Pin, len(kept))
	for i := range kept {
		c := &kept[i]
		pins[i] = result.Pin{
			ID:        c.ID,
			Name:      c.Name,
			AgeMonths: c.AgeMonths,
			Species:   c.Species,
			Latitude:  *c.Latitude,
			Longitude: *c.Longitude,
			PhotoURL:  photos[c.ID],
		}
	}
	return pins, nil
}

// InvalidateReported drops the cached reported set. Called by the reporting
// collaborator after a report is filed or resolved.
func (s *Service) InvalidateReported(ctx context.Context) error {
	if err := s.reported.Invalidate(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	return nil
}

func observeStage(stage string, start time.Time) {
	metrics.FeedStageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
