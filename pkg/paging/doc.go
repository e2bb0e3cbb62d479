// Package paging composes the cursor codec, a per-resource field
// registry, and a Datastore collaborator into the query engine behind
// every list endpoint.
//
// # Field registry
//
// Sortable surfaces declare their logical fields and the ID tie-breaker
// once at startup via NewFieldRegistry. The registry is the only place
// logical names meet datastore columns; callers sorting by an
// unregistered name get a client error before any query is built.
//
// # Engine behavior
//
// List clamps the requested limit to [1, MaxLimit], decodes the
// incoming cursor into an additional keyset predicate, and issues a
// single fetch for limit+1 rows ordered by (sortField, id). An overflow
// row means hasMore: the page is trimmed to limit and the next cursor
// is derived from its last row. The total count is computed only on the
// first page.
//
// A cursor whose direction or sort field disagrees with the active sort
// is rejected with ErrCursorMismatch before predicates are built;
// accepting it would silently return wrong-order results.
//
// The Datastore sees only AND-composed conditions, a sort spec, and a
// row limit; it is free to translate those into SQL or anything else.
// Caller cancellation flows through ctx into the datastore call.
package paging
