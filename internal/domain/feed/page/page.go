// Package page orders ranked items and cuts them into cursor-addressed pages.
package page

import (
	"sort"

	"github.com/kailas-cloud/petfeed/internal/domain/feed/cursor"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/result"
)

// DefaultSize is the number of items served per page.
const DefaultSize = 20

// Sort orders items by score descending, then by id descending.
// Scores are compared at cursor precision so that the order agrees with Resume.
func Sort(items []result.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return less(&items[i], &items[j])
	})
}

func less(a, b *result.Item) bool {
	sa, sb := a.SortScore(), b.SortScore()
	if sa != sb {
		return sa > sb
	}
	return a.Listing.ID > b.Listing.ID
}

// Resume returns the index of the first item after c in sorted items.
//
// An exact id match resumes right after that item. Otherwise the first item that
// would sort after c is used; the pool may have drifted since the cursor was issued,
// so this is best effort and may skip or repeat items. Returns len(items) when
// nothing follows.
func Resume(items []result.Item, c cursor.Cursor) int {
	for i := range items {
		if items[i].Listing.ID == c.ID {
			return i + 1
		}
	}
	for i := range items {
		s := items[i].SortScore()
		if s < c.Score || (s == c.Score && items[i].Listing.ID <= c.ID) {
			return i
		}
	}
	return len(items)
}

// Slice cuts one page out of sorted items, starting after c when c is non-nil.
// NextCursor is set only when at least one item remains after the page.
func Slice(items []result.Item, c *cursor.Cursor, size int) result.Page {
	if size <= 0 {
		size = DefaultSize
	}
	start := 0
	if c != nil {
		start = Resume(items, *c)
	}

	// size+1 tells us whether there is a next page
	end := min(start+size+1, len(items))
	window := items[start:end]

	p := result.Page{Items: []result.Item{}}
	if len(window) > size {
		window = window[:size]
		next := window[size-1].Cursor()
		p.NextCursor = &next
	}
	p.Items = append(p.Items, window...)
	return p
}
