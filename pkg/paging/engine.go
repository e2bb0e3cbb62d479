package paging

import (
	"context"
	"errors"
	"fmt"

	"github.com/brandkit/brandkit/pkg/cursor"
)

// Config bounds page sizes for an engine instance.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig matches the platform-wide list defaults.
var DefaultConfig = Config{DefaultLimit: 50, MaxLimit: 200}

// Sort is the active sort of a list request.
type Sort struct {
	Field     string
	Direction cursor.Direction
}

// Page is the pagination slice of a list request. A zero Limit falls
// back to the engine's default.
type Page struct {
	Cursor string
	Limit  int
}

// Result is one page of rows with pagination metadata.
type Result[T Row] struct {
	Items      []T
	HasMore    bool
	NextCursor string
	// Total is computed only on the first page (no cursor) to avoid
	// paying for an expensive count on every page. It goes stale as
	// pages advance; that is a deliberate latency/accuracy tradeoff.
	Total *int64
}

// Engine serves list endpoints with stable keyset pagination over a
// Datastore collaborator. It is stateless and safe for concurrent use.
type Engine[T Row] struct {
	registry *FieldRegistry
	ds       Datastore[T]
	cfg      Config
}

// NewEngine creates an engine over the given field registry and datastore.
func NewEngine[T Row](registry *FieldRegistry, ds Datastore[T], cfg Config) (*Engine[T], error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrInvalidFieldRegistry)
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultConfig.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = DefaultConfig.MaxLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return &Engine[T]{registry: registry, ds: ds, cfg: cfg}, nil
}

// List serves one page: it validates the sort against the field
// registry, turns the incoming cursor into an additional keyset
// predicate, fetches limit+1 rows, and derives hasMore plus the next
// cursor from the overflow row.
func (e *Engine[T]) List(ctx context.Context, filter []Condition, sort Sort, page Page) (*Result[T], error) {
	sortField, err := e.registry.Resolve(sort.Field)
	if err != nil {
		return nil, err
	}
	if !sort.Direction.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortDirection, sort.Direction)
	}

	limit := e.clampLimit(page.Limit)

	conditions := make([]Condition, 0, len(filter)+2)
	conditions = append(conditions, filter...)

	if page.Cursor != "" {
		c, err := cursor.Decode(page.Cursor)
		if err != nil {
			return nil, err
		}
		// A cursor issued under a different sort would inject wrong-order
		// state; reject it before building predicates.
		if c.Direction != sort.Direction || c.SortField != sort.Field {
			return nil, ErrCursorMismatch
		}
		conditions = append(conditions, e.keysetConditions(sortField, c)...)
	}

	idField := e.registry.ID()
	orderBy := []OrderBy{{Column: sortField.Column, Direction: sort.Direction}}
	if sortField.Column != idField.Column {
		orderBy = append(orderBy, OrderBy{Column: idField.Column, Direction: sort.Direction})
	}

	rows, err := e.ds.Select(ctx, Query{
		Conditions: conditions,
		OrderBy:    orderBy,
		Limit:      limit + 1,
	})
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	result := &Result[T]{Items: rows}
	if len(rows) > limit {
		result.Items = rows[:limit]
		result.HasMore = true

		last := result.Items[limit-1]
		next, err := cursor.Encode(cursor.Cursor{
			SortField: sort.Field,
			SortValue: last.PagingValue(sortField.Column),
			ID:        last.PagingID(),
			Direction: sort.Direction,
		})
		if err != nil {
			return nil, err
		}
		result.NextCursor = next
	}

	if page.Cursor == "" {
		total, err := e.ds.Count(ctx, filter)
		if err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		result.Total = &total
	}

	return result, nil
}

// keysetConditions translates a cursor position into AND-composable
// predicates. For the id field alone a strict inequality suffices. For
// any other field the two-part predicate (value >=/<= cursorValue) AND
// (id >/< cursorID) orders duplicate sort values by id, so no row is
// skipped or repeated across pages.
func (e *Engine[T]) keysetConditions(sortField Field, c cursor.Cursor) []Condition {
	idField := e.registry.ID()

	strict, inclusive := OpGt, OpGte
	if c.Direction == cursor.Desc {
		strict, inclusive = OpLt, OpLte
	}

	if sortField.Column == idField.Column {
		return []Condition{{Column: idField.Column, Op: strict, Value: c.ID}}
	}

	return []Condition{
		{Column: sortField.Column, Op: inclusive, Value: c.SortValue},
		{Column: idField.Column, Op: strict, Value: c.ID},
	}
}

func (e *Engine[T]) clampLimit(limit int) int {
	if limit <= 0 {
		return e.cfg.DefaultLimit
	}
	return min(limit, e.cfg.MaxLimit)
}
