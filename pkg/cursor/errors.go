package cursor

import "errors"

var (
	// ErrInvalidCursor is returned when a token cannot be decoded into a
	// structurally valid cursor. This is a client error.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrNotEncodable is returned when required cursor fields are missing
	// at encode time.
	ErrNotEncodable = errors.New("cursor is missing required fields")
)
