// Package listing holds the read-only projection of pet listings consumed by the feed.
// The listings collaborator owns their lifecycle; nothing here mutates storage.
package listing

import (
	"strings"
	"time"
)

// Listing status values that make a listing eligible for discovery.
const (
	StatusAvailable    = "available"
	ModerationApproved = "approved"
)

// Size is the size class of a pet.
type Size string

// Size classes.
const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ParseSize normalizes s and reports whether it is a known size class.
func ParseSize(s string) (Size, bool) {
	switch v := Size(strings.ToLower(strings.TrimSpace(s))); v {
	case SizeSmall, SizeMedium, SizeLarge:
		return v, true
	default:
		return "", false
	}
}

// Sex of a pet, always lower-case.
type Sex string

// Sex values.
const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex normalizes s to lower-case and reports whether it is known.
func ParseSex(s string) (Sex, bool) {
	switch v := Sex(strings.ToLower(strings.TrimSpace(s))); v {
	case SexMale, SexFemale:
		return v, true
	default:
		return "", false
	}
}

// EnergyLevel of a pet.
type EnergyLevel string

// Energy levels.
const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// ParseEnergyLevel normalizes s and reports whether it is a known level.
func ParseEnergyLevel(s string) (EnergyLevel, bool) {
	switch v := EnergyLevel(strings.ToLower(strings.TrimSpace(s))); v {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return v, true
	default:
		return "", false
	}
}

// NormalizeSpecies lower-cases and trims a species name. Species is stored lower-case.
func NormalizeSpecies(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Candidate is a listing as seen by the ranking engine.
type Candidate struct {
	ID               string
	Name             string
	AgeMonths        int
	Species          string
	Breed            string
	Size             Size
	Sex              Sex
	EnergyLevel      EnergyLevel
	Temperament      string
	GoodWithChildren bool
	GoodWithDogs     bool
	GoodWithCats     bool
	HasSpecialNeeds  bool
	IsDocile         bool
	IsTrained        bool
	OwnerID          string
	Latitude         *float64
	Longitude        *float64
	CreatedAt        time.Time
	Status           string
	ModerationStatus string
}

// HasCoordinates reports whether both latitude and longitude are known.
func (c *Candidate) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Preference is the optional per-requester fallback for filters and radius.
type Preference struct {
	Species  string
	Size     Size
	RadiusKm float64 // 0 = not set
}

// Affinity holds species and size classes the requester has favorited before.
type Affinity struct {
	species map[string]struct{}
	sizes   map[Size]struct{}
}

// NewAffinity builds an Affinity from favorited species and sizes.
func NewAffinity(species []string, sizes []Size) Affinity {
	a := Affinity{
		species: make(map[string]struct{}, len(species)),
		sizes:   make(map[Size]struct{}, len(sizes)),
	}
	for _, s := range species {
		if s = NormalizeSpecies(s); s != "" {
			a.species[s] = struct{}{}
		}
	}
	for _, s := range sizes {
		if s != "" {
			a.sizes[s] = struct{}{}
		}
	}
	return a
}

// IsEmpty reports whether the requester has no favorites.
func (a Affinity) IsEmpty() bool {
	return len(a.species) == 0 && len(a.sizes) == 0
}

// Matches reports whether species or size appears among the favorites.
func (a Affinity) Matches(species string, size Size) bool {
	if _, ok := a.species[NormalizeSpecies(species)]; ok {
		return true
	}
	if size == "" {
		return false
	}
	_, ok := a.sizes[size]
	return ok
}
