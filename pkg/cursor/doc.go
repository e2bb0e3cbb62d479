// Package cursor implements the opaque pagination token used by every
// list endpoint.
//
// A cursor captures the last-seen row's sort position: the logical sort
// field, its serialized value, the row ID (the universal tie-breaker),
// and the sort direction the cursor was issued under. Encode/Decode
// round-trip losslessly; Decode treats every malformed token as a
// client-facing ErrInvalidCursor, never an internal error.
//
// The keyset condition built from a cursor lives in pkg/paging. For
// sortField == id the condition is a strict inequality on id alone; for
// any other field it is the two-part predicate
// (sortValue >=/<= cursorValue) AND (id >/< cursorID), which orders rows
// with duplicate sort values by falling back to id so no row is skipped
// or repeated across pages.
package cursor
