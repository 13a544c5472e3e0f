package listing

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kailas-cloud/petfeed/internal/db"
	"github.com/kailas-cloud/petfeed/internal/db/sqlstore"
	"github.com/kailas-cloud/petfeed/internal/domain/feed/filter"
	domlisting "github.com/kailas-cloud/petfeed/internal/domain/listing"
)

// store is the consumer interface for the listing tables (ISP).
type store interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Args() *sqlstore.Args
}

// Repo implements the read side of listings, favorites and preferences for the feed.
type Repo struct {
	store store
}

// New creates a listing repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

const candidateColumns = `id, owner_id, name, age_months, species, breed, size, sex,
	energy_level, temperament, good_with_children, good_with_dogs, good_with_cats,
	has_special_needs, is_docile, is_trained, latitude, longitude, status,
	moderation_status, created_at`

// FetchCandidates runs the single bounded candidate query: eligible listings that pass
// every hard filter and no exclusion, newest ids first, at most limit rows.
func (r *Repo) FetchCandidates(
	ctx context.Context, f filter.Filter, ex filter.Exclusions, limit int,
) ([]domlisting.Candidate, error) {
	args := r.store.Args()
	where := []string{
		"status = " + args.Add(domlisting.StatusAvailable),
		"moderation_status = " + args.Add(domlisting.ModerationApproved),
	}
	where = append(where, filterClauses(args, f)...)

	if ids := ex.ListingIDs(); len(ids) > 0 {
		where = append(where, args.NotIn("id", ids))
	}
	if owners := ex.OwnerIDs(); len(owners) > 0 {
		where = append(where, args.NotIn("owner_id", owners))
	}

	q := "SELECT " + candidateColumns + " FROM listings WHERE " +
		strings.Join(where, " AND ") + " ORDER BY id DESC LIMIT " + args.Add(limit)

	rows, err := r.store.QueryContext(ctx, q, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", &db.Error{Op: db.OpQuery, Err: err})
	}
	defer rows.Close()

	out := make([]domlisting.Candidate, 0, limit)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("fetch candidates: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", &db.Error{Op: db.OpScan, Err: err})
	}
	return out, nil
}

func filterClauses(args *sqlstore.Args, f filter.Filter) []string {
	var w []string
	if f.Species != "" {
		w = append(w, "LOWER(TRIM(species)) = "+args.Add(f.Species))
	}
	if f.Breed != "" {
		w = append(w, "LOWER(breed) = LOWER("+args.Add(f.Breed)+")")
	}
	if f.Sex != "" {
		w = append(w, "sex = "+args.Add(string(f.Sex)))
	}
	if f.Size != "" {
		w = append(w, "size = "+args.Add(string(f.Size)))
	}
	if f.EnergyLevel != "" {
		w = append(w, "energy_level = "+args.Add(string(f.EnergyLevel)))
	}
	if f.Temperament != "" {
		w = append(w, "temperament = "+args.Add(f.Temperament))
	}

	bools := []struct {
		column string
		value  *bool
	}{
		{"good_with_children", f.GoodWithChildren},
		{"good_with_dogs", f.GoodWithDogs},
		{"good_with_cats", f.GoodWithCats},
		{"has_special_needs", f.HasSpecialNeeds},
		{"is_docile", f.IsDocile},
		{"is_trained", f.IsTrained},
	}
	for _, b := range bools {
		if b.value != nil {
			w = append(w, b.column+" = "+args.Add(*b.value))
		}
	}
	return w
}

func scanCandidate(rows *sql.Rows) (domlisting.Candidate, error) {
	var (
		c                                     domlisting.Candidate
		breed, size, sex, energy, temperament sql.NullString
		lat, lng                              sql.NullFloat64
		createdAt                             sqlstore.Time
	)
	err := rows.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.AgeMonths, &c.Species, &breed, &size, &sex,
		&energy, &temperament, &c.GoodWithChildren, &c.GoodWithDogs, &c.GoodWithCats,
		&c.HasSpecialNeeds, &c.IsDocile, &c.IsTrained, &lat, &lng, &c.Status,
		&c.ModerationStatus, &createdAt,
	)
	if err != nil {
		return domlisting.Candidate{}, &db.Error{Op: db.OpScan, Err: err}
	}

	c.Species = domlisting.NormalizeSpecies(c.Species)
	c.Breed = breed.String
	c.Temperament = temperament.String
	// unknown enum values are dropped, not surfaced
	c.Size, _ = domlisting.ParseSize(size.String)
	c.Sex, _ = domlisting.ParseSex(sex.String)
	c.EnergyLevel, _ = domlisting.ParseEnergyLevel(energy.String)
	if lat.Valid && lng.Valid {
		c.Latitude, c.Longitude = &lat.Float64, &lng.Float64
	}
	c.CreatedAt = createdAt.Time
	return c, nil
}

// FavoriteCounts returns favorite counts for ids in one grouped query.
// Ids without favorites are absent from the result.
func (r *Repo) FavoriteCounts(ctx context.Context, ids []string) (map[string]int, error) {
	counts := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	args := r.store.Args()
	q := "SELECT listing_id, COUNT(*) FROM favorites WHERE " + args.In("listing_id", ids) +
		" GROUP BY listing_id"

	rows, err := r.store.QueryContext(ctx, q, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("favorite counts: %w", &db.Error{Op: db.OpQuery, Err: err})
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("favorite counts: %w", &db.Error{Op: db.OpScan, Err: err})
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorite counts: %w", &db.Error{Op: db.OpScan, Err: err})
	}
	return counts, nil
}

// Preference returns the requester's saved preference, or nil when none is stored.
func (r *Repo) Preference(ctx context.Context, userID string) (*domlisting.Preference, error) {
	args := r.store.Args()
	q := "SELECT species, size, radius_km FROM adopter_preferences WHERE user_id = " + args.Add(userID)

	rows, err := r.store.QueryContext(ctx, q, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("preference: %w", &db.Error{Op: db.OpQuery, Err: err})
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("preference: %w", &db.Error{Op: db.OpScan, Err: err})
		}
		return nil, nil
	}

	var (
		species, size sql.NullString
		radius        sql.NullFloat64
	)
	if err := rows.Scan(&species, &size, &radius); err != nil {
		return nil, fmt.Errorf("preference: %w", &db.Error{Op: db.OpScan, Err: err})
	}

	p := &domlisting.Preference{Species: domlisting.NormalizeSpecies(species.String)}
	p.Size, _ = domlisting.ParseSize(size.String)
	if radius.Valid && radius.Float64 > 0 {
		p.RadiusKm = radius.Float64
	}
	return p, nil
}

// FavoriteAffinity returns the species and sizes of listings the requester favorited.
func (r *Repo) FavoriteAffinity(ctx context.Context, userID string) (domlisting.Affinity, error) {
	args := r.store.Args()
	q := "SELECT DISTINCT l.species, l.size FROM favorites f JOIN listings l ON l.id = f.listing_id" +
		" WHERE f.user_id = " + args.Add(userID)

	rows, err := r.store.QueryContext(ctx, q, args.Values()...)
	if err != nil {
		return domlisting.Affinity{}, fmt.Errorf("favorite affinity: %w", &db.Error{Op: db.OpQuery, Err: err})
	}
	defer rows.Close()

	var (
		species []string
		sizes   []domlisting.Size
	)
	for rows.Next() {
		var sp, sz sql.NullString
		if err := rows.Scan(&sp, &sz); err != nil {
			return domlisting.Affinity{}, fmt.Errorf("favorite affinity: %w", &db.Error{Op: db.OpScan, Err: err})
		}
		species = append(species, sp.String)
		if s, ok := domlisting.ParseSize(sz.String); ok {
			sizes = append(sizes, s)
		}
	}
	if err := rows.Err(); err != nil {
		return domlisting.Affinity{}, fmt.Errorf("favorite affinity: %w", &db.Error{Op: db.OpScan, Err: err})
	}
	return domlisting.NewAffinity(species, sizes), nil
}

// PhotoKeys returns ordered photo storage keys per listing id in one query.
func (r *Repo) PhotoKeys(ctx context.Context, ids []string) (map[string][]string, error) {
	keys := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return keys, nil
	}

	args := r.store.Args()
	q := "SELECT listing_id, storage_key FROM listing_photos WHERE " + args.In("listing_id", ids) +
		" ORDER BY listing_id, position, storage_key"

	rows, err := r.store.QueryContext(ctx, q, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("photo keys: %w", &db.Error{Op: db.OpQuery, Err: err})
	}
	defer rows.Close()

	for rows.Next() {
		var id, key string
		if err := rows.Scan(&id, &key); err != nil {
			return nil, fmt.Errorf("photo keys: %w", &db.Error{Op: db.OpScan, Err: err})
		}
		keys[id] = append(keys[id], key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("photo keys: %w", &db.Error{Op: db.OpScan, Err: err})
	}
	return keys, nil
}
