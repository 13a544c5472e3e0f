package feed

import (
	"context"

	"github.com/kailas-cloud/petfeed/internal/domain/feed/filter"
	"github.com/kailas-cloud/petfeed/internal/domain/listing"
)

// ListingReader is the listings collaborator: candidates, favorites, preferences, photos.
type ListingReader interface {
	FetchCandidates(ctx context.Context, f filter.Filter, ex filter.Exclusions, limit int) ([]listing.Candidate, error)
	FavoriteCounts(ctx context.Context, ids []string) (map[string]int, error)
	Preference(ctx context.Context, userID string) (*listing.Preference, error)
	FavoriteAffinity(ctx context.Context, userID string) (listing.Affinity, error)
	PhotoKeys(ctx context.Context, ids []string) (map[string][]string, error)
}

// ReportedCache serves the global reported listing ids.
type ReportedCache interface {
	ReportedIDs(ctx context.Context) ([]string, error)
	Invalidate(ctx context.Context) error
}

// BlockReader reads user blocks in both directions.
type BlockReader interface {
	BlockedOwnerIDs(ctx context.Context, userID string) ([]string, error)
	BlockedByOwnerIDs(ctx context.Context, userID string) ([]string, error)
}

// SwipeReader reads listings the requester already swiped on.
type SwipeReader interface {
	SwipedIDs(ctx context.Context, userID string) ([]string, error)
}

// VerificationReader reads approved verification badges.
type VerificationReader interface {
	VerifiedListingIDs(ctx context.Context, ids []string) (map[string]bool, error)
}

// PhotoURLResolver maps photo storage keys to client URLs.
type PhotoURLResolver interface {
	URL(ctx context.Context, key string) (string, error)
}
