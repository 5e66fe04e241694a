package model

import "github.com/oklog/ulid/v2"

// NewID generates a new ULID string for use as an invocation identifier.
// ULIDs sort lexicographically by creation time, which keeps history
// listings in arrival order without a separate sequence column.
func NewID() string {
	return ulid.Make().String()
}
