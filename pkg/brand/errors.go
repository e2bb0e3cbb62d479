package brand

import "errors"

var (
	// ErrBrandNotFound is returned when a brand cannot be found.
	ErrBrandNotFound = errors.New("brand not found")

	// ErrInvalidIdentifier is returned when the identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid brand identifier")

	// ErrNoBrandInContext is returned when no brand is found in context.
	ErrNoBrandInContext = errors.New("no brand in context")

	// ErrSnapshotUnavailable is returned when the snapshot source fails.
	ErrSnapshotUnavailable = errors.New("brand access snapshot unavailable")
)
