// Package cursor encodes feed positions as opaque tokens.
//
// A cursor names a position in the score-descending, id-descending ordering of a
// freshly ranked pool. It is not a storage offset: the same token may resolve to a
// different index after the pool drifts.
package cursor

import (
	"math"
	"strconv"
	"strings"
)

const (
	separator = "_"
	decimals  = 10
)

var scale = math.Pow10(decimals)

// Cursor is a decoded resume position.
type Cursor struct {
	Score float64
	ID    string
}

// New builds a cursor with the score rounded to 10 decimals.
func New(score float64, id string) Cursor {
	return Cursor{Score: Round(score), ID: id}
}

// Round rounds a score to the cursor precision (10 decimals).
func Round(score float64) float64 {
	return math.Round(score*scale) / scale
}

// Encode renders the cursor as "<score>_<id>".
func (c Cursor) Encode() string {
	return strconv.FormatFloat(Round(c.Score), 'f', decimals, 64) + separator + c.ID
}

// Decode parses a token produced by Encode.
// Malformed input yields ok=false; callers treat that as "no cursor".
func Decode(token string) (Cursor, bool) {
	raw, id, found := strings.Cut(token, separator)
	if !found || raw == "" || id == "" {
		return Cursor{}, false
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return Cursor{}, false
	}
	return Cursor{Score: Round(score), ID: id}, true
}
