package access

import "errors"

var (
	// ErrUnauthorized is returned when no verified caller identity is present.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnknownRole is returned when a role string is outside the closed role set.
	ErrUnknownRole = errors.New("unknown role")

	// ErrNoMembership is returned when the caller has no membership in any brand.
	ErrNoMembership = errors.New("no brand membership")

	// ErrNoBrandSelected is returned when an endpoint demands an active
	// brand and none is selected for the request.
	ErrNoBrandSelected = errors.New("no brand selected")

	// ErrNoDecisionInContext is returned when a gate runs before the
	// access decision was resolved into the request context.
	ErrNoDecisionInContext = errors.New("no access decision in context")

	// ErrReadBlocked is returned when the resolved decision denies reads.
	ErrReadBlocked = errors.New("brand read access blocked")

	// ErrWriteBlocked is returned when the resolved decision denies writes.
	ErrWriteBlocked = errors.New("brand write access blocked")
)
