package chi

import (
	"github.com/kailas-cloud/petfeed/internal/domain/feed/result"
	"github.com/kailas-cloud/petfeed/internal/version"
)

// ErrorCode is the machine-readable error code in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest     ErrorCode = "bad_request"
	ErrorCodeUnauthorized   ErrorCode = "unauthorized"
	ErrorCodeNotFound       ErrorCode = "not_found"
	ErrorCodeNotImplemented ErrorCode = "not_implemented"
	ErrorCodeInternalError  ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FeedAttributes are the behavior flags shown on a listing card.
type FeedAttributes struct {
	EnergyLevel      string `json:"energyLevel,omitempty"`
	Temperament      string `json:"temperament,omitempty"`
	GoodWithChildren bool   `json:"goodWithChildren"`
	GoodWithDogs     bool   `json:"goodWithDogs"`
	GoodWithCats     bool   `json:"goodWithCats"`
	HasSpecialNeeds  bool   `json:"hasSpecialNeeds"`
	IsDocile         bool   `json:"isDocile"`
	IsTrained        bool   `json:"isTrained"`
}

// FeedItem is one listing in the feed.
type FeedItem struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	AgeMonths  int            `json:"ageMonths"`
	Species    string         `json:"species"`
	Breed      string         `json:"breed,omitempty"`
	Size       string         `json:"size,omitempty"`
	Sex        string         `json:"sex,omitempty"`
	Attributes FeedAttributes `json:"attributes"`
	DistanceKm *float64       `json:"distanceKm,omitempty"`
	PhotoURLs  []string       `json:"photoUrls"`
	Verified   bool           `json:"verified"`
}

// FeedResponse is the body of GET /api/v1/feed.
type FeedResponse struct {
	Items      []FeedItem `json:"items"`
	NextCursor *string    `json:"nextCursor"`
}

// MapPin is one marker on the map view.
type MapPin struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AgeMonths int     `json:"ageMonths"`
	Species   string  `json:"species"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PhotoURL  *string `json:"photoUrl"`
}

// MapResponse is the body of GET /api/v1/feed/map.
type MapResponse struct {
	Items []MapPin `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version version.Info      `json:"version"`
}

func feedPageToDTO(p result.Page) FeedResponse {
	items := make([]FeedItem, len(p.Items))
	for i := range p.Items {
		items[i] = feedItemToDTO(&p.Items[i])
	}

	resp := FeedResponse{Items: items}
	if p.NextCursor != nil {
		c := p.NextCursor.Encode()
		resp.NextCursor = &c
	}
	return resp
}

func feedItemToDTO(it *result.Item) FeedItem {
	l := &it.Listing
	photos := it.PhotoURLs
	if photos == nil {
		photos = []string{}
	}
	return FeedItem{
		ID:        l.ID,
		Name:      l.Name,
		AgeMonths: l.AgeMonths,
		Species:   l.Species,
		Breed:     l.Breed,
		Size:      string(l.Size),
		Sex:       string(l.Sex),
		Attributes: FeedAttributes{
			EnergyLevel:      string(l.EnergyLevel),
			Temperament:      l.Temperament,
			GoodWithChildren: l.GoodWithChildren,
			GoodWithDogs:     l.GoodWithDogs,
			GoodWithCats:     l.GoodWithCats,
			HasSpecialNeeds:  l.HasSpecialNeeds,
			IsDocile:         l.IsDocile,
			IsTrained:        l.IsTrained,
		},
		DistanceKm: it.DistanceKm,
		PhotoURLs:  photos,
		Verified:   it.Verified,
	}
}

func pinsToDTO(pins []result.Pin) MapResponse {
	items := make([]MapPin, len(pins))
	for i, p := range pins {
		items[i] = MapPin{
			ID:        p.ID,
			Name:      p.Name,
			AgeMonths: p.AgeMonths,
			Species:   p.Species,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		}
		if p.PhotoURL != "" {
			u := p.PhotoURL
			items[i].PhotoURL = &u
		}
	}
	return MapResponse{Items: items}
}
