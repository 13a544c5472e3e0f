package sqlstore

import (
	"context"
	"testing"
	"time"
)

func TestArgs_Postgres(t *testing.T) {
	a := NewArgs(DialectPostgres)
	if got := a.Add("x"); got != "$1" {
		t.Errorf("Add() = %q, want $1", got)
	}
	if got := a.In("id", []string{"a", "b"}); got != "id = ANY($2)" {
		t.Errorf("In() = %q", got)
	}
	if got := a.NotIn("owner_id", nil); got != "NOT (owner_id = ANY($3))" {
		t.Errorf("NotIn() = %q", got)
	}
	vals := a.Values()
	if len(vals) != 3 {
		t.Fatalf("expected 3 values, got %d", len(vals))
	}
	if ids, ok := vals[1].([]string); !ok || len(ids) != 2 {
		t.Errorf("In bound %#v, want the whole []string", vals[1])
	}
	if ids, ok := vals[2].([]string); !ok || ids == nil {
		t.Errorf("NotIn bound %#v, want a non-nil empty []string", vals[2])
	}
}

func TestArgs_SQLite(t *testing.T) {
	a := NewArgs(DialectSQLite)
	a.Add(1)
	if got := a.In("listing_id", []string{"a", "b", "c"}); got != "listing_id IN (SELECT value FROM json_each(?))" {
		t.Errorf("In() = %q", got)
	}
	if got := a.NotIn("id", nil); got != "id NOT IN (SELECT value FROM json_each(?))" {
		t.Errorf("NotIn() = %q", got)
	}
	vals := a.Values()
	if vals[1] != `["a","b","c"]` || vals[2] != `[]` {
		t.Errorf("unexpected bound values %#v", vals)
	}
}

func TestTime_Scan(t *testing.T) {
	want := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		src  any
	}{
		{"time", want.In(time.FixedZone("BRT", -3*3600))},
		{"rfc3339", "2026-03-01T12:30:00Z"},
		{"sqlite text", "2026-03-01 12:30:00"},
		{"bytes", []byte("2026-03-01 12:30:00")},
		{"unix", want.Unix()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			if err := got.Scan(tt.src); err != nil {
				t.Fatalf("Scan() error: %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("Scan() = %v, want %v", got.Time, want)
			}
		})
	}

	var bad Time
	if err := bad.Scan("yesterday"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
	if err := bad.Scan(3.14); err == nil {
		t.Error("expected error for float")
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: "mysql"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenMemory_Bootstrap(t *testing.T) {
	d := OpenMemory(t)
	ctx := context.Background()

	if err := d.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := d.WaitForReady(ctx, time.Second); err != nil {
		t.Fatalf("WaitForReady: %v", err)
	}
	if d.Dialect() != DialectSQLite {
		t.Error("expected sqlite dialect")
	}

	var n int
	row := d.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'listings'`)
	if err := row.Scan(&n); err != nil {
		t.Fatalf("query schema: %v", err)
	}
	if n != 1 {
		t.Error("listings table not created")
	}
}
