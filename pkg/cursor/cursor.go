package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// Direction is the sort direction a cursor was issued under.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Valid reports whether the direction is one of asc or desc.
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// Cursor encodes the last-seen row's sort position for keyset pagination.
//
// ID is always the tie-breaker guaranteeing total order even when
// SortValue has duplicates. Direction must match the list's active sort
// direction or the cursor is rejected at decode time by the query engine.
//
// The wire format is caller-facing and must remain stable: base64url of
// a JSON object {sortField, sortValue, id, direction, timestamp}.
// Changing the shape breaks in-flight pagination for long-lived clients.
type Cursor struct {
	SortField string    `json:"sortField"`
	SortValue string    `json:"sortValue"`
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
	Timestamp int64     `json:"timestamp"`
}

// Encode serializes the cursor into an opaque token. SortField, ID, and
// Direction are required; a missing field is an encoding error and
// should be unreachable from well-formed callers. The timestamp is
// stamped at encode time unless already set.
func Encode(c Cursor) (string, error) {
	if c.SortField == "" || c.ID == "" || !c.Direction.Valid() {
		return "", ErrNotEncodable
	}

	if c.Timestamp == 0 {
		c.Timestamp = time.Now().UTC().UnixMilli()
	}

	data, err := json.Marshal(c)
	if err != nil {
		return "", errors.Join(ErrNotEncodable, err)
	}

	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode parses an opaque token back into a Cursor. Cursors are
// caller-opaque but not caller-trusted: any malformed input resolves to
// ErrInvalidCursor, a client-facing error, never an internal fault.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, ErrInvalidCursor
	}

	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, ErrInvalidCursor
	}

	if c.SortField == "" || c.ID == "" || !c.Direction.Valid() {
		return Cursor{}, ErrInvalidCursor
	}

	return c, nil
}
