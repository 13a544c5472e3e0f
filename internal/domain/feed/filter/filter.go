package filter

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/petfeed/internal/domain/listing"
)

// Filter holds the hard filters applied by the candidate query.
// Zero values mean "no constraint"; nil booleans are not filtered on.
type Filter struct {
	Species          string
	Breed            string // matched case-insensitively
	Sex              listing.Sex
	Size             listing.Size
	EnergyLevel      listing.EnergyLevel
	Temperament      string
	GoodWithChildren *bool
	GoodWithDogs     *bool
	GoodWithCats     *bool
	HasSpecialNeeds  *bool
	IsDocile         *bool
	IsTrained        *bool
}

// Normalize lower-cases species and trims free-text fields.
func (f Filter) Normalize() Filter {
	f.Species = listing.NormalizeSpecies(f.Species)
	f.Breed = strings.TrimSpace(f.Breed)
	f.Temperament = strings.TrimSpace(f.Temperament)
	return f
}

// Matches reports whether c passes every hard filter (status and moderation included).
// Storage applies the same predicate in SQL; this is the in-memory twin used by tests
// and by the post-fetch exclusion check.
func (f Filter) Matches(c *listing.Candidate) bool {
	if c.Status != listing.StatusAvailable || c.ModerationStatus != listing.ModerationApproved {
		return false
	}
	if f.Species != "" && listing.NormalizeSpecies(c.Species) != f.Species {
		return false
	}
	if f.Breed != "" && !strings.EqualFold(c.Breed, f.Breed) {
		return false
	}
	if f.Sex != "" && c.Sex != f.Sex {
		return false
	}
	if f.Size != "" && c.Size != f.Size {
		return false
	}
	if f.EnergyLevel != "" && c.EnergyLevel != f.EnergyLevel {
		return false
	}
	if f.Temperament != "" && c.Temperament != f.Temperament {
		return false
	}
	return boolMatches(f.GoodWithChildren, c.GoodWithChildren) &&
		boolMatches(f.GoodWithDogs, c.GoodWithDogs) &&
		boolMatches(f.GoodWithCats, c.GoodWithCats) &&
		boolMatches(f.HasSpecialNeeds, c.HasSpecialNeeds) &&
		boolMatches(f.IsDocile, c.IsDocile) &&
		boolMatches(f.IsTrained, c.IsTrained)
}

func boolMatches(want *bool, got bool) bool {
	return want == nil || *want == got
}

// Exclusions are the per-request hard exclusions resolved before the candidate query.
type Exclusions struct {
	ReportedIDs     []string // listing ids
	SwipedIDs       []string // listing ids
	BlockedOwnerIDs []string // owner ids, both block directions
}

// ListingIDs returns the sorted, de-duplicated union of reported and swiped ids.
func (e Exclusions) ListingIDs() []string {
	return union(e.ReportedIDs, e.SwipedIDs)
}

// OwnerIDs returns the sorted, de-duplicated blocked owner ids.
func (e Exclusions) OwnerIDs() []string {
	return union(e.BlockedOwnerIDs)
}

// IsEmpty reports whether nothing is excluded.
func (e Exclusions) IsEmpty() bool {
	return len(e.ReportedIDs) == 0 && len(e.SwipedIDs) == 0 && len(e.BlockedOwnerIDs) == 0
}

// Set indexes the exclusions for per-candidate lookups.
func (e Exclusions) Set() Set {
	s := Set{
		listings: make(map[string]struct{}, len(e.ReportedIDs)+len(e.SwipedIDs)),
		owners:   make(map[string]struct{}, len(e.BlockedOwnerIDs)),
	}
	for _, id := range e.ReportedIDs {
		s.listings[id] = struct{}{}
	}
	for _, id := range e.SwipedIDs {
		s.listings[id] = struct{}{}
	}
	for _, id := range e.BlockedOwnerIDs {
		s.owners[id] = struct{}{}
	}
	return s
}

// Set is an indexed Exclusions. The zero value excludes nothing.
type Set struct {
	listings map[string]struct{}
	owners   map[string]struct{}
}

// Excludes reports whether c must be removed from the feed.
func (s Set) Excludes(c *listing.Candidate) bool {
	if _, ok := s.listings[c.ID]; ok {
		return true
	}
	_, ok := s.owners[c.OwnerID]
	return ok
}

func union(lists ...[]string) []string {
	seen := make(map[string]struct{})
	for _, l := range lists {
		for _, id := range l {
			if id != "" {
				seen[id] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
