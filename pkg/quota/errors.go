package quota

import "errors"

var (
	// ErrSKULimitExceeded is returned when a creation would exceed the plan's SKU ceiling.
	ErrSKULimitExceeded = errors.New("sku limit exceeded")

	// ErrNoCounterRegistered is returned when usage is requested for a
	// brand with no registered counter.
	ErrNoCounterRegistered = errors.New("no sku counter registered")

	// ErrFailedToCountUsage is returned when the usage counter fails.
	ErrFailedToCountUsage = errors.New("failed to count sku usage")
)
