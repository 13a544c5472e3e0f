// Package score computes the composite relevance score of a feed candidate.
//
// total = 0.35·distance + 0.25·recency + 0.15·engagement + 0.15·compatibility + 0.10·similar
//
// Every sub-score lies in [0,1] and the weights sum to 1, so total lies in [0,1].
// Scores are request-scoped and never persisted.
package score

import (
	"math"
	"time"

	"github.com/kailas-cloud/petfeed/internal/domain/listing"
)

// Sub-score weights.
const (
	WeightDistance      = 0.35
	WeightRecency       = 0.25
	WeightEngagement    = 0.15
	WeightCompatibility = 0.15
	WeightSimilar       = 0.10
)

const (
	// DefaultDistanceKm is assumed when the requester or the candidate lacks coordinates.
	DefaultDistanceKm = 50.0
	// RecencyDecayPerDay is the exponential decay rate of the recency sub-score.
	RecencyDecayPerDay = 0.08
	// engagementLogScale maps ln(1+favorites) into [0,1]; ~147 favorites saturate it.
	engagementLogScale = 5.0
)

// Weights returns the sub-score weights in formula order.
func Weights() [5]float64 {
	return [5]float64{WeightDistance, WeightRecency, WeightEngagement, WeightCompatibility, WeightSimilar}
}

// Target is the effective species/size the requester is looking for.
// Empty fields mean "any".
type Target struct {
	Species string
	Size    listing.Size
}

// Breakdown holds every sub-score and the weighted total.
type Breakdown struct {
	Distance      float64
	Recency       float64
	Engagement    float64
	Compatibility float64
	Similar       float64
	Total         float64
}

// Scorer scores candidates for one request.
type Scorer struct {
	target   Target
	affinity listing.Affinity
	now      time.Time
}

// New creates a Scorer bound to the request's target, favorite affinity and clock.
func New(target Target, affinity listing.Affinity, now time.Time) *Scorer {
	target.Species = listing.NormalizeSpecies(target.Species)
	return &Scorer{target: target, affinity: affinity, now: now}
}

// Score computes the breakdown for c. distanceKm is nil when no distance could be computed.
func (s *Scorer) Score(c *listing.Candidate, distanceKm *float64, favorites int) Breakdown {
	b := Breakdown{
		Distance:      Distance(distanceKm),
		Recency:       Recency(c.CreatedAt, s.now),
		Engagement:    Engagement(favorites),
		Compatibility: Compatibility(s.target, c.Species, c.Size),
		Similar:       Similar(s.affinity, c.Species, c.Size),
	}
	b.Total = WeightDistance*b.Distance +
		WeightRecency*b.Recency +
		WeightEngagement*b.Engagement +
		WeightCompatibility*b.Compatibility +
		WeightSimilar*b.Similar
	return b
}

// Distance returns 1/(1+km), using DefaultDistanceKm when km is nil.
func Distance(km *float64) float64 {
	d := DefaultDistanceKm
	if km != nil && *km >= 0 {
		d = *km
	}
	return 1 / (1 + d)
}

// Recency returns exp(-0.08·days since createdAt). Future timestamps count as now.
func Recency(createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Exp(-RecencyDecayPerDay * days)
}

// Engagement returns min(1, ln(1+favorites)/5).
func Engagement(favorites int) float64 {
	if favorites <= 0 {
		return 0
	}
	return math.Min(1, math.Log1p(float64(favorites))/engagementLogScale)
}

// Compatibility averages the species and size matches against the target.
func Compatibility(t Target, species string, size listing.Size) float64 {
	var m float64
	if t.Species == "" || listing.NormalizeSpecies(species) == t.Species {
		m++
	}
	if t.Size == "" || size == t.Size {
		m++
	}
	return m / 2
}

// Similar returns 1 when the candidate's species or size was favorited before.
func Similar(a listing.Affinity, species string, size listing.Size) float64 {
	if a.Matches(species, size) {
		return 1
	}
	return 0
}
