// Package quota enforces per-plan SKU ceilings for brand-scoped writes.
//
// ResolveSKUAccess is a pure function over the resolved access decision,
// the brand snapshot, and the intended creation count. It only applies
// after the write gate: a decision without write capability resolves to
// blocked without inspecting usage. An unlimited ceiling (-1) always
// resolves ok; otherwise the creation is blocked iff
// used + intended > limit.
//
// RequireCapacity wires the resolver into the middleware chain for
// SKU-creating endpoints:
//
//	r.Use(access.RequireWriteAccess())
//	r.With(quota.RequireCapacity(quota.One)).Post("/products", createProduct)
//
// The Service type produces live usage numbers from a registered counter
// for dashboards and for building snapshots, so the access path and the
// UI agree on the same count.
package quota
