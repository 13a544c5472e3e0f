package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op constants name the failing operation for error context.
// Redis ops use command names, SQL ops the logical statement.
const (
	OpDel   = "DEL"
	OpGet   = "GET"
	OpSet   = "SET"
	OpPing  = "PING"
	OpQuery = "QUERY"
	OpScan  = "SCAN"
	OpExec  = "EXEC"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
