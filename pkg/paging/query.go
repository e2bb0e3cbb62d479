package paging

import (
	"context"

	"github.com/brandkit/brandkit/pkg/cursor"
)

// Op is a comparison operator in a datastore condition.
type Op string

const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpIn  Op = "in"
	OpNot Op = "not_in"
	// OpLike matches case-insensitive substrings; used by search filters.
	OpLike Op = "like"
)

// Condition is a single composable predicate. The engine assumes no
// particular query language, only that the datastore composes
// conditions with logical AND.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// OrderBy is one column of the query's sort spec.
type OrderBy struct {
	Column    string
	Direction cursor.Direction
}

// Query is the single fetch the engine issues per page.
type Query struct {
	Conditions []Condition
	OrderBy    []OrderBy
	Limit      int
}

// Row is the minimal surface a paginated record must expose so the
// engine can derive the next cursor from the last row of a page.
type Row interface {
	// PagingID returns the record's unique ID in wire form.
	PagingID() string
	// PagingValue returns the wire form of the named sort column's value.
	PagingValue(column string) string
}

// Datastore is the storage collaborator. Both calls are single-shot:
// no internal retries, and caller cancellation flows through ctx into
// the underlying query.
type Datastore[T Row] interface {
	// Select returns at most q.Limit rows matching all conditions,
	// ordered by q.OrderBy.
	Select(ctx context.Context, q Query) ([]T, error)

	// Count returns the number of rows matching all conditions.
	Count(ctx context.Context, conditions []Condition) (int64, error)
}
