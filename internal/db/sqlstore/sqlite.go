package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const memoryDSN = ":memory:"

var sqlitePragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

func openSQLite(ctx context.Context, cfg Config) (*DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = memoryDSN
	}

	sdb, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if dsn == memoryDSN {
		// every connection to :memory: is a separate database
		sdb.SetMaxOpenConns(1)
	}

	for _, p := range sqlitePragmas {
		if _, err := sdb.ExecContext(ctx, p); err != nil {
			_ = sdb.Close()
			return nil, fmt.Errorf("sqlite %s: %w", p, err)
		}
	}

	if cfg.Bootstrap {
		if _, err := sdb.ExecContext(ctx, Schema); err != nil {
			_ = sdb.Close()
			return nil, fmt.Errorf("bootstrap sqlite schema: %w", err)
		}
	}

	return &DB{DB: sdb, dialect: DialectSQLite}, nil
}

// OpenMemory opens a bootstrapped in-memory SQLite database for tests
// and closes it on cleanup.
func OpenMemory(t testing.TB) *DB {
	t.Helper()
	d, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: memoryDSN, Bootstrap: true})
	if err != nil {
		t.Fatalf("sqlstore.OpenMemory: %v", err)
	}
	t.Cleanup(d.Close)
	return d
}
