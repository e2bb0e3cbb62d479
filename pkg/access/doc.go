// Package access derives read/write capability decisions from a brand's
// billing and lifecycle state, and composes them into an HTTP middleware
// chain for brand-scoped endpoints.
//
// # Decision resolution
//
// Resolve is a pure function over a role and a brand.AccessSnapshot.
// Rules are priority-ordered, first match wins:
//
//  1. no membership resolvable        -> blocked_no_membership
//  2. no active brand selected        -> blocked_no_active_brand
//  3. brand not qualified             -> blocked_pending_qualification
//  4. brand suspended                 -> blocked_suspended
//  5. billing cancelled               -> blocked_cancelled
//  6. billing pending payment         -> blocked_pending_payment
//  7. billing past due                -> blocked_past_due_readonly (grace period)
//  8. otherwise                       -> allowed
//
// "allowed" is the only code granting writes; past-due brands keep read
// access; every other blocked code grants nothing. A missing snapshot is
// replaced with the safe default and resolves to blocked: the system
// fails closed on missing configuration.
//
// # Middleware chain
//
// The chain composes in strict order, and each step can only narrow
// permissions, never widen them:
//
//	r.Use(access.Authenticate(identitySource))
//	r.Use(access.ResolveBrandMembership(brandResolver, brandProvider, memberships))
//	r.Use(access.RequireBrand())
//	r.Use(access.ResolveAccess(snapshotSource, memberships))
//
//	r.Group(func(r chi.Router) {
//	    r.Use(access.RequireReadAccess())
//	    r.Get("/products", listProducts)
//	})
//	r.Group(func(r chi.Router) {
//	    r.Use(access.RequireWriteAccess())
//	    r.Post("/products", createProduct)
//	})
//
// SKU-creating writes additionally mount the quota gate from
// pkg/quota after RequireWriteAccess.
//
// Decisions and snapshots are evaluated once per request and never
// cached across requests. The snapshot read and later datastore queries
// are not transactional; lifecycle state can change in between, and the
// next request simply re-resolves.
package access
