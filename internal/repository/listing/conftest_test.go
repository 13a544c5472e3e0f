package listing

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/petfeed/internal/db/sqlstore"
)

var seedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// row is a listings row for seeding; zero values map to an eligible dog.
type row struct {
	id, owner, species, breed, size, sex, energy, temperament string
	children, trained                                         bool
	lat, lng                                                  *float64
	status, moderation                                        string
	createdAt                                                 time.Time
}

func f64(v float64) *float64 { return &v }

func newTestRepo(t *testing.T) (*Repo, *sqlstore.DB) {
	t.Helper()
	d := sqlstore.OpenMemory(t)
	return New(d), d
}

func mustExec(t *testing.T, d *sqlstore.DB, q string, args ...any) {
	t.Helper()
	if _, err := d.ExecContext(context.Background(), q, args...); err != nil {
		t.Fatalf("exec %q: %v", q, err)
	}
}

func seedListing(t *testing.T, d *sqlstore.DB, r row) {
	t.Helper()
	if r.owner == "" {
		r.owner = "owner-" + r.id
	}
	if r.species == "" {
		r.species = "dog"
	}
	if r.status == "" {
		r.status = "available"
	}
	if r.moderation == "" {
		r.moderation = "approved"
	}
	if r.createdAt.IsZero() {
		r.createdAt = seedTime
	}
	mustExec(t, d, `INSERT INTO listings (id, owner_id, name, age_months, species, breed, size, sex,
		energy_level, temperament, good_with_children, is_trained, latitude, longitude, status,
		moderation_status, created_at) VALUES (?, ?, ?, 12, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.id, r.owner, "pet "+r.id, r.species, nullable(r.breed), nullable(r.size), nullable(r.sex),
		nullable(r.energy), nullable(r.temperament), r.children, r.trained, r.lat, r.lng,
		r.status, r.moderation, r.createdAt.Format("2006-01-02 15:04:05"))
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func seedFavorite(t *testing.T, d *sqlstore.DB, userID, listingID string) {
	t.Helper()
	mustExec(t, d, `INSERT INTO favorites (user_id, listing_id) VALUES (?, ?)`, userID, listingID)
}
