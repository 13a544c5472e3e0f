// Package result defines the ranked items and pages produced by the feed.
package result

import (
	"github.com/kailas-cloud/petfeed/internal/domain/feed/cursor"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/score"
	"github.com/kailas-cloud/petfeed/internal/domain/listing"
)

// Item is a scored candidate.
type Item struct {
	Listing listing.Candidate
	Score   score.Breakdown
	// DistanceKm is set only when both sides had coordinates.
	DistanceKm *float64
	Verified   bool
	PhotoURLs  []string
}

// SortScore is the score used for ordering and cursors (rounded to cursor precision).
func (it *Item) SortScore() float64 {
	return cursor.Round(it.Score.Total)
}

// Cursor returns the resume position right after this item.
func (it *Item) Cursor() cursor.Cursor {
	return cursor.New(it.Score.Total, it.Listing.ID)
}

// Page is one window of the ranked feed.
type Page struct {
	Items []Item
	// NextCursor is nil when there is nothing after this page.
	NextCursor *cursor.Cursor
}

// HasMore reports whether a follow-up page exists.
func (p Page) HasMore() bool {
	return p.NextCursor != nil
}

// Pin is a listing projected for the map view.
type Pin struct {
	ID        string
	Name      string
	AgeMonths int
	Species   string
	Latitude  float64
	Longitude float64
	PhotoURL  string // first photo, empty when none
}
