package petfeed

// FeedRequest is one feed or map query. Zero values mean "not set".
type FeedRequest struct {
	RequesterID string // empty = anonymous

	Lat      *float64
	Lng      *float64
	RadiusKm float64
	Cursor   string

	Species     string
	Breed       string
	Temperament string
	Sex         string
	Size        string
	EnergyLevel string

	GoodWithChildren *bool
	GoodWithDogs     *bool
	GoodWithCats     *bool
	HasSpecialNeeds  *bool
	IsDocile         *bool
	IsTrained        *bool
}

// Listing is one ranked feed item.
type Listing struct {
	ID          string
	Name        string
	AgeMonths   int
	Species     string
	Breed       string
	Size        string
	Sex         string
	EnergyLevel string
	Temperament string

	GoodWithChildren bool
	GoodWithDogs     bool
	GoodWithCats     bool
	HasSpecialNeeds  bool
	IsDocile         bool
	IsTrained        bool

	Score      float64
	DistanceKm *float64 // nil when either side has no coordinates
	PhotoURLs  []string
	Verified   bool
}

// FeedPage is one page of the ranked feed.
type FeedPage struct {
	Items      []Listing
	NextCursor string // empty on the last page
}

// HasMore reports whether another page follows.
func (p FeedPage) HasMore() bool {
	return p.NextCursor != ""
}

// Pin is one listing on the map view.
type Pin struct {
	ID        string
	Name      string
	AgeMonths int
	Species   string
	Latitude  float64
	Longitude float64
	PhotoURL  string
}

// Float returns a pointer to v, for FeedRequest coordinates.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for FeedRequest attribute filters.
func Bool(v bool) *bool { return &v }
