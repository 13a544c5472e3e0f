// Package sqlstore opens the relational listing store behind database/sql.
//
// Postgres is served through pgxpool and the pgx stdlib adapter; SQLite through
// modernc.org/sqlite for local runs and tests. Repositories write one query per
// dialect-agnostic statement and bind arguments through Args.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kailas-cloud/petfeed/internal/db"
)

// Driver names accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Compile-time check: DB implements db.Pinger.
var _ db.Pinger = (*DB)(nil)

// Config holds connection parameters.
type Config struct {
	Driver string
	DSN    string
	// MaxConns caps the pool (postgres only, 0 = driver default).
	MaxConns int32
	// SimpleProtocol disables prepared statements, needed behind transaction poolers.
	SimpleProtocol bool
	// Bootstrap creates the schema on open (sqlite only).
	Bootstrap bool
}

// DB is a database/sql handle bound to a placeholder dialect.
type DB struct {
	*sql.DB
	dialect Dialect
	close   func()
}

// Open connects to the configured driver.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return openPostgres(ctx, cfg)
	case DriverSQLite:
		return openSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Dialect returns the placeholder dialect of the underlying driver.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Args starts a new argument list for this database's dialect.
func (d *DB) Args() *Args {
	return NewArgs(d.dialect)
}

// Ping checks connectivity.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close releases the database handle and any pool behind it.
func (d *DB) Close() {
	_ = d.DB.Close()
	if d.close != nil {
		d.close()
	}
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (d *DB) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := d.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := d.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
