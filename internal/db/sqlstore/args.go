package sqlstore

import (
	"encoding/json"
	"strconv"
)

// Dialect selects the positional placeholder syntax.
type Dialect int

// Supported dialects.
const (
	DialectPostgres Dialect = iota // $1, $2, ...
	DialectSQLite                  // ?
)

// Args accumulates query arguments and renders their placeholders.
type Args struct {
	dialect Dialect
	values  []any
}

// NewArgs creates an empty argument list.
func NewArgs(d Dialect) *Args {
	return &Args{dialect: d}
}

// Add appends v and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	if a.dialect == DialectPostgres {
		return "$" + strconv.Itoa(len(a.values))
	}
	return "?"
}

// In returns a predicate matching column against ids, bound as a single
// parameter so the set size is not limited by the driver's placeholder cap.
// Postgres receives a text[]; SQLite a JSON array expanded with json_each.
func (a *Args) In(column string, ids []string) string {
	if a.dialect == DialectPostgres {
		return column + " = ANY(" + a.Add(nonNil(ids)) + ")"
	}
	return column + " IN (SELECT value FROM json_each(" + a.Add(jsonList(ids)) + "))"
}

// NotIn is the negation of In.
func (a *Args) NotIn(column string, ids []string) string {
	if a.dialect == DialectPostgres {
		return "NOT (" + column + " = ANY(" + a.Add(nonNil(ids)) + "))"
	}
	return column + " NOT IN (SELECT value FROM json_each(" + a.Add(jsonList(ids)) + "))"
}

// nonNil keeps an empty set from binding as NULL, which would match nothing in NOT.
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func jsonList(ids []string) string {
	// a []string always marshals
	data, _ := json.Marshal(nonNil(ids))
	return string(data)
}

// Values returns the accumulated arguments in order.
func (a *Args) Values() []any {
	return a.values
}
