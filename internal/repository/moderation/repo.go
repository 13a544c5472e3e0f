// Package moderation reads the reporting, blocking and verification collaborators' tables.
package moderation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kailas-cloud/petfeed/internal/db"
	"github.com/kailas-cloud/petfeed/internal/db/sqlstore"
)

// Report status that no longer hides a listing.
const reportDismissed = "dismissed"

// Verification status that grants the badge.
const verificationApproved = "approved"

type store interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Args() *sqlstore.Args
}

// Repo reads moderation state. It never writes.
type Repo struct {
	store store
}

// New creates a moderation repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// ReportedIDs returns every listing id with a report that was not dismissed.
func (r *Repo) ReportedIDs(ctx context.Context) ([]string, error) {
	args := r.store.Args()
	q := "SELECT DISTINCT listing_id FROM listing_reports WHERE status <> " + args.Add(reportDismissed) +
		" ORDER BY listing_id"
	ids, err := r.strings(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("reported ids: %w", err)
	}
	return ids, nil
}

// BlockedOwnerIDs returns the users userID has blocked.
func (r *Repo) BlockedOwnerIDs(ctx context.Context, userID string) ([]string, error) {
	args := r.store.Args()
	q := "SELECT blocked_id FROM user_blocks WHERE blocker_id = " + args.Add(userID)
	ids, err := r.strings(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("blocked owner ids: %w", err)
	}
	return ids, nil
}

// BlockedByOwnerIDs returns the users who have blocked userID.
func (r *Repo) BlockedByOwnerIDs(ctx context.Context, userID string) ([]string, error) {
	args := r.store.Args()
	q := "SELECT blocker_id FROM user_blocks WHERE blocked_id = " + args.Add(userID)
	ids, err := r.strings(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("blocked-by owner ids: %w", err)
	}
	return ids, nil
}

// VerifiedListingIDs returns the subset of ids holding an approved verification.
func (r *Repo) VerifiedListingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := r.store.Args()
	q := "SELECT listing_id FROM listing_verifications WHERE status = " + args.Add(verificationApproved) +
		" AND " + args.In("listing_id", ids)
	verified, err := r.strings(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("verified listing ids: %w", err)
	}
	for _, id := range verified {
		out[id] = true
	}
	return out, nil
}

func (r *Repo) strings(ctx context.Context, q string, args *sqlstore.Args) ([]string, error) {
	rows, err := r.store.QueryContext(ctx, q, args.Values()...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: err}
	}
	return out, nil
}
