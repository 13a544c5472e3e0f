package chi

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/petfeed/internal/domain/feed/cursor"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/filter"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/request"
	"github.com/kailas-cloud/petfeed/internal/domain/listing"
	"github.com/kailas-cloud/petfeed/internal/metrics"
)

// RequesterHeader carries the authenticated user id, set by the upstream gateway.
const RequesterHeader = "X-User-ID"

// optional binds a single form query parameter. A missing or unparseable value yields nil.
func optional[T any](q url.Values, name string) *T {
	var v *T
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return nil
	}
	return v
}

// requesterID returns the canonical requester id, or "" when the header is absent or not a UUID.
func requesterID(r *http.Request) string {
	raw := r.Header.Get(RequesterHeader)
	if raw == "" {
		return ""
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return ""
	}
	return id.String()
}

// RequesterKind labels a request for metrics: a valid requester header is a user.
func RequesterKind(r *http.Request) string {
	if requesterID(r) == "" {
		return metrics.RequesterAnonymous
	}
	return metrics.RequesterUser
}

// parseFeedQuery builds a feed query from the request.
// Invalid parameters are dropped; the result is always usable.
func parseFeedQuery(r *http.Request) *request.Query {
	v := r.URL.Query()
	q := &request.Query{RequesterID: requesterID(r)}

	// both coordinates or neither
	if lat, lng := optional[float64](v, "lat"), optional[float64](v, "lng"); lat != nil && lng != nil {
		q.SetOrigin(*lat, *lng)
	}
	if km := optional[float64](v, "radiusKm"); km != nil {
		q.SetRadius(*km)
	}
	if token := optional[string](v, "cursor"); token != nil {
		if c, ok := cursor.Decode(*token); ok {
			q.Cursor = &c
		}
	}

	q.Filter = parseFilter(v)
	return q
}

func parseFilter(v url.Values) filter.Filter {
	var f filter.Filter
	if s := optional[string](v, "species"); s != nil {
		f.Species = *s
	}
	if s := optional[string](v, "breed"); s != nil {
		f.Breed = *s
	}
	if s := optional[string](v, "temperament"); s != nil {
		f.Temperament = *s
	}
	if s := optional[string](v, "sex"); s != nil {
		f.Sex, _ = listing.ParseSex(*s)
	}
	if s := optional[string](v, "size"); s != nil {
		f.Size, _ = listing.ParseSize(*s)
	}
	if s := optional[string](v, "energyLevel"); s != nil {
		f.EnergyLevel, _ = listing.ParseEnergyLevel(*s)
	}

	f.GoodWithChildren = optional[bool](v, "goodWithChildren")
	f.GoodWithDogs = optional[bool](v, "goodWithDogs")
	f.GoodWithCats = optional[bool](v, "goodWithCats")
	f.HasSpecialNeeds = optional[bool](v, "hasSpecialNeeds")
	f.IsDocile = optional[bool](v, "isDocile")
	f.IsTrained = optional[bool](v, "isTrained")
	return f
}
