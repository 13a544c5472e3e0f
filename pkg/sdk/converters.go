package petfeed

import (
	"github.com/kailas-cloud/petfeed/internal/domain/feed/cursor"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/filter"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/request"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/result"
	"github.com/kailas-cloud/petfeed/internal/domain/listing"
)

// toQuery applies the same dropping rules as the HTTP API.
func toQuery(req *FeedRequest) *request.Query {
	q := &request.Query{RequesterID: req.RequesterID}
	if req.Lat != nil && req.Lng != nil {
		q.SetOrigin(*req.Lat, *req.Lng)
	}
	if req.RadiusKm != 0 {
		q.SetRadius(req.RadiusKm)
	}
	if c, ok := cursor.Decode(req.Cursor); ok {
		q.Cursor = &c
	}

	f := filter.Filter{
		Species:          req.Species,
		Breed:            req.Breed,
		Temperament:      req.Temperament,
		GoodWithChildren: req.GoodWithChildren,
		GoodWithDogs:     req.GoodWithDogs,
		GoodWithCats:     req.GoodWithCats,
		HasSpecialNeeds:  req.HasSpecialNeeds,
		IsDocile:         req.IsDocile,
		IsTrained:        req.IsTrained,
	}
	f.Sex, _ = listing.ParseSex(req.Sex)
	f.Size, _ = listing.ParseSize(req.Size)
	f.EnergyLevel, _ = listing.ParseEnergyLevel(req.EnergyLevel)
	q.Filter = f
	return q
}

func pageFromResult(p result.Page) FeedPage {
	items := make([]Listing, len(p.Items))
	for i := range p.Items {
		items[i] = listingFromItem(&p.Items[i])
	}
	out := FeedPage{Items: items}
	if p.NextCursor != nil {
		out.NextCursor = p.NextCursor.Encode()
	}
	return out
}

func listingFromItem(it *result.Item) Listing {
	l := &it.Listing
	return Listing{
		ID:               l.ID,
		Name:             l.Name,
		AgeMonths:        l.AgeMonths,
		Species:          l.Species,
		Breed:            l.Breed,
		Size:             string(l.Size),
		Sex:              string(l.Sex),
		EnergyLevel:      string(l.EnergyLevel),
		Temperament:      l.Temperament,
		GoodWithChildren: l.GoodWithChildren,
		GoodWithDogs:     l.GoodWithDogs,
		GoodWithCats:     l.GoodWithCats,
		HasSpecialNeeds:  l.HasSpecialNeeds,
		IsDocile:         l.IsDocile,
		IsTrained:        l.IsTrained,
		Score:            it.Score.Total,
		DistanceKm:       it.DistanceKm,
		PhotoURLs:        it.PhotoURLs,
		Verified:         it.Verified,
	}
}
