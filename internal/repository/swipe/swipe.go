// Package swipe reads the listings a requester has already swiped on.
// Two backends: the relational swipes table, or a DynamoDB table keyed by user.
package swipe

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kailas-cloud/petfeed/internal/db"
	"github.com/kailas-cloud/petfeed/internal/db/sqlstore"
)

type store interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Args() *sqlstore.Args
}

// SQLRepo reads swipes from the relational store.
type SQLRepo struct {
	store store
}

// NewSQL creates a swipe repository over the swipes table.
func NewSQL(s store) *SQLRepo {
	return &SQLRepo{store: s}
}

// SwipedIDs returns every listing id userID swiped on, in either direction.
func (r *SQLRepo) SwipedIDs(ctx context.Context, userID string) ([]string, error) {
	args := r.store.Args()
	q := "SELECT listing_id FROM swipes WHERE user_id = " + args.Add(userID)

	rows, err := r.store.QueryContext(ctx, q, args.Values()...)
	if err != nil {
		return nil, fmt.Errorf("swiped ids: %w", &db.Error{Op: db.OpQuery, Err: err})
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("swiped ids: %w", &db.Error{Op: db.OpScan, Err: err})
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("swiped ids: %w", &db.Error{Op: db.OpScan, Err: err})
	}
	return ids, nil
}
