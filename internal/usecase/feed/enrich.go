package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/petfeed/internal/domain/feed/result"
	"github.com/kailas-cloud/petfeed/internal/domain/listing"
	logpkg "github.com/kailas-cloud/petfeed/internal/logger"
	"github.com/kailas-cloud/petfeed/internal/metrics"
)

// Enrichment sources for the failure counter.
const (
	sourceVerification = "verification"
	sourcePhotos       = "photos"
)

// enrich attaches the verified flag and photo URLs to the served page.
// Both lookups are batched over the page ids and run concurrently. A failed
// lookup leaves its field at the zero value; the page is still served.
func (s *Service) enrich(ctx context.Context, items []result.Item) {
	if len(items) == 0 {
		return
	}
	defer observeStage("enrich", time.Now())

	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].Listing.ID
	}

	var (
		wg       sync.WaitGroup
		verified map[string]bool
		urls     map[string][]string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		verified = s.verified(ctx, ids)
	}()
	go func() {
		defer wg.Done()
		urls = s.photoURLs(ctx, ids)
	}()
	wg.Wait()

	for i := range items {
		id := items[i].Listing.ID
		items[i].Verified = verified[id]
		items[i].PhotoURLs = urls[id]
	}
}

func (s *Service) verified(ctx context.Context, ids []string) map[string]bool {
	v, err := s.verifications.VerifiedListingIDs(ctx, ids)
	if err != nil {
		enrichmentFailed(ctx, sourceVerification, err)
		return nil
	}
	return v
}

// photoURLs resolves ordered photo URLs per listing. Keys that fail to resolve are skipped.
func (s *Service) photoURLs(ctx context.Context, ids []string) map[string][]string {
	if s.photos == nil {
		return nil
	}
	keys, err := s.listings.PhotoKeys(ctx, ids)
	if err != nil {
		enrichmentFailed(ctx, sourcePhotos, err)
		return nil
	}

	out := make(map[string][]string, len(keys))
	for id, ks := range keys {
		for _, k := range ks {
			u, err := s.photos.URL(ctx, k)
			if err != nil {
				enrichmentFailed(ctx, sourcePhotos, err)
				continue
			}
			out[id] = append(out[id], u)
		}
	}
	return out
}

// firstPhotos returns the first photo URL per listing (map pins).
func (s *Service) firstPhotos(ctx context.Context, candidates []listing.Candidate) map[string]string {
	if len(candidates) == 0 || s.photos == nil {
		return nil
	}
	ids := make([]string, len(candidates))
	for i := range candidates {
		ids[i] = candidates[i].ID
	}

	keys, err := s.listings.PhotoKeys(ctx, ids)
	if err != nil {
		enrichmentFailed(ctx, sourcePhotos, err)
		return nil
	}

	out := make(map[string]string, len(keys))
	for id, ks := range keys {
		if len(ks) == 0 {
			continue
		}
		u, err := s.photos.URL(ctx, ks[0])
		if err != nil {
			enrichmentFailed(ctx, sourcePhotos, err)
			continue
		}
		out[id] = u
	}
	return out
}

func enrichmentFailed(ctx context.Context, source string, err error) {
	metrics.FeedEnrichmentFailuresTotal.WithLabelValues(source).Inc()
	logpkg.FromContext(ctx).Warn("Feed enrichment lookup failed, serving without it",
		zap.String("source", source), zap.Error(err))
}
