// Package request defines a normalized feed query.
package request

import (
	"github.com/kailas-cloud/petfeed/internal/domain/feed/cursor"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/filter"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/score"
	"github.com/kailas-cloud/petfeed/internal/domain/geo"
	"github.com/kailas-cloud/petfeed/internal/domain/listing"
)

// Radius bounds in kilometers.
const (
	MinRadiusKm     = 1.0
	MaxRadiusKm     = 500.0
	DefaultRadiusKm = 50.0
)

// Query is a feed request after parameter validation.
// Invalid parameters are dropped before a Query is built, never rejected.
type Query struct {
	// RequesterID is empty for anonymous requests.
	RequesterID string
	// Origin is nil unless both coordinates were supplied and valid.
	Origin   *geo.Point
	RadiusKm float64 // 0 = not set
	Cursor   *cursor.Cursor
	Filter   filter.Filter
}

// Anonymous reports whether the request carries no requester identity.
func (q *Query) Anonymous() bool {
	return q.RequesterID == ""
}

// SetOrigin sets Origin when lat/lng are valid and reports whether it did.
func (q *Query) SetOrigin(lat, lng float64) bool {
	if !geo.ValidateCoordinates(lat, lng) {
		return false
	}
	q.Origin = &geo.Point{Lat: lat, Lng: lng}
	return true
}

// SetRadius sets RadiusKm when km is within bounds and reports whether it did.
func (q *Query) SetRadius(km float64) bool {
	if !(km >= MinRadiusKm && km <= MaxRadiusKm) {
		return false
	}
	q.RadiusKm = km
	return true
}

// EffectiveRadius resolves the radius: request, then preference, then the default.
func (q *Query) EffectiveRadius(pref *listing.Preference, fallback float64) float64 {
	if q.RadiusKm > 0 {
		return q.RadiusKm
	}
	if pref != nil && pref.RadiusKm > 0 {
		return pref.RadiusKm
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultRadiusKm
}

// Target resolves the compatibility target: explicit filter, then preference, then any.
func (q *Query) Target(pref *listing.Preference) score.Target {
	t := score.Target{Species: q.Filter.Species, Size: q.Filter.Size}
	if pref == nil {
		return t
	}
	if t.Species == "" {
		t.Species = listing.NormalizeSpecies(pref.Species)
	}
	if t.Size == "" {
		t.Size = pref.Size
	}
	return t
}
