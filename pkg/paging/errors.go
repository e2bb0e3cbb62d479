package paging

import "errors"

var (
	// ErrInvalidFieldRegistry is returned when a field registry is misconfigured at startup.
	ErrInvalidFieldRegistry = errors.New("invalid field registry")

	// ErrUnknownSortField is returned when a caller sorts by an
	// unregistered field. This is a client error.
	ErrUnknownSortField = errors.New("unknown sort field")

	// ErrInvalidSortDirection is returned for directions outside asc/desc.
	ErrInvalidSortDirection = errors.New("invalid sort direction")

	// ErrCursorMismatch is returned when a cursor's sort field or
	// direction disagrees with the active sort. Accepting such a cursor
	// would silently return wrong-order results, so it is rejected
	// before any predicate is built.
	ErrCursorMismatch = errors.New("cursor does not match active sort")

	// ErrQueryFailed wraps datastore failures during fetch or count.
	ErrQueryFailed = errors.New("paginated query failed")
)
