package feed

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/petfeed/internal/domain"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/filter"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/request"
	"github.com/kailas-cloud/petfeed/internal/domain/listing"
)

// inputs are the per-request lookups gathered before the candidate query.
type inputs struct {
	exclusions filter.Exclusions
	excluded   filter.Set
	preference *listing.Preference
	affinity   listing.Affinity
}

// resolveInputs runs every independent lookup concurrently.
// Any failure fails the request: a partial exclusion set could surface a
// blocked owner or a reported listing.
func (s *Service) resolveInputs(ctx context.Context, q *request.Query) (inputs, error) {
	defer observeStage("inputs", time.Now())

	var (
		in                 inputs
		blocked, blockedBy []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := s.reported.ReportedIDs(gctx)
		if err != nil {
			return fmt.Errorf("reported ids: %w", err)
		}
		in.exclusions.ReportedIDs = ids
		return nil
	})

	if !q.Anonymous() {
		uid := q.RequesterID
		g.Go(func() error {
			var err error
			if blocked, err = s.blocks.BlockedOwnerIDs(gctx, uid); err != nil {
				return fmt.Errorf("blocked owners: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			if blockedBy, err = s.blocks.BlockedByOwnerIDs(gctx, uid); err != nil {
				return fmt.Errorf("blocked-by owners: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			ids, err := s.swipes.SwipedIDs(gctx, uid)
			if err != nil {
				return fmt.Errorf("swiped ids: %w", err)
			}
			in.exclusions.SwipedIDs = ids
			return nil
		})
		g.Go(func() error {
			p, err := s.listings.Preference(gctx, uid)
			if err != nil {
				return fmt.Errorf("preference: %w", err)
			}
			in.preference = p
			return nil
		})
		g.Go(func() error {
			a, err := s.listings.FavoriteAffinity(gctx, uid)
			if err != nil {
				return fmt.Errorf("favorite affinity: %w", err)
			}
			in.affinity = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return inputs{}, fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, err)
	}

	in.exclusions.BlockedOwnerIDs = append(blocked, blockedBy...)
	in.excluded = in.exclusions.Set()
	return in, nil
}
