package access

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/brandkit/brandkit/pkg/brand"
)

// IdentitySource verifies the caller and supplies the identity attached
// to the request. It is an external collaborator (session store, JWT
// verifier, API-key lookup); this package only consumes its result.
type IdentitySource interface {
	// Identify returns the verified identity for the request.
	// The bool result is false when no identity is present; an error
	// means verification itself failed.
	Identify(r *http.Request) (Identity, bool, error)
}

// IdentitySourceFunc is an adapter to allow ordinary functions as IdentitySources.
type IdentitySourceFunc func(r *http.Request) (Identity, bool, error)

// Identify calls the function.
func (f IdentitySourceFunc) Identify(r *http.Request) (Identity, bool, error) {
	return f(r)
}

// MembershipSource resolves brand memberships for a verified identity.
// It is an external collaborator backed by the membership table.
type MembershipSource interface {
	// RoleForBrand returns the caller's role in the given brand.
	// Returns ErrNoMembership when the caller does not belong to it.
	RoleForBrand(ctx context.Context, userID, brandID uuid.UUID) (Role, error)

	// HasAnyMembership reports whether the caller belongs to any brand
	// at all. Distinguishes "no membership anywhere" from "no brand
	// selected" in the resolved decision.
	HasAnyMembership(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Authenticate resolves the caller identity and stores it in the request
// context. Requests without a verified identity fail closed with
// ErrUnauthorized. This is the first link of the access chain; every
// later step assumes an identity is present.
func Authenticate(src IdentitySource, opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok, err := src.Identify(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if !ok {
				cfg.errorHandler(w, r, ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// ResolveBrandMembership resolves the active brand and the caller's role
// in it. When no brand identifier is present, or the caller has no role
// in the resolved brand, the request proceeds without brand or
// membership in context rather than failing: some endpoints are
// role-agnostic, and the access gates downstream fail closed anyway.
func ResolveBrandMembership(resolver brand.Resolver, provider brand.Provider, memberships MembershipSource, opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				cfg.errorHandler(w, r, ErrUnauthorized)
				return
			}

			identifier, err := resolver.Resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			b, err := lookupBrand(r.Context(), cfg, provider, identifier)
			if err != nil {
				if errors.Is(err, brand.ErrBrandNotFound) {
					// Unknown brand identifier behaves like none selected.
					next.ServeHTTP(w, r)
					return
				}
				cfg.errorHandler(w, r, err)
				return
			}

			ctx := brand.WithBrand(r.Context(), b)

			role, err := memberships.RoleForBrand(ctx, id.UserID, b.ID)
			if err != nil {
				if errors.Is(err, ErrNoMembership) {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				cfg.errorHandler(w, r, err)
				return
			}

			ctx = WithMembership(ctx, Membership{UserID: id.UserID, BrandID: b.ID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireBrand ensures an active brand is present in the context.
// Endpoints that operate on brand-scoped data mount this after
// ResolveBrandMembership.
func RequireBrand(opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := brand.FromContext(r.Context()); !ok {
				cfg.errorHandler(w, r, ErrNoBrandSelected)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ResolveAccess fetches a fresh AccessSnapshot, evaluates the access
// decision, and attaches both to the request context. The snapshot is
// read once per request and never cached; the next request re-resolves.
//
// The decision is attached even when blocked: the endpoint-specific
// gates (RequireReadAccess, RequireWriteAccess) translate a blocked
// decision into the matching user-facing error. A later step can only
// narrow what an earlier step allowed, never widen it.
func ResolveAccess(snapshots brand.SnapshotSource, memberships MembershipSource, opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				cfg.errorHandler(w, r, ErrUnauthorized)
				return
			}

			b, hasBrand := brand.FromContext(r.Context())
			m, hasMembership := MembershipFromContext(r.Context())

			var resolved *Resolved
			switch {
			case !hasBrand && !hasMembership:
				anyMembership, err := memberships.HasAnyMembership(r.Context(), id.UserID)
				if err != nil {
					cfg.errorHandler(w, r, err)
					return
				}
				if anyMembership {
					resolved = &Resolved{Decision: NoActiveBrand()}
				} else {
					resolved = &Resolved{Decision: NoMembership()}
				}
			case hasBrand && !hasMembership:
				resolved = &Resolved{Decision: NoMembership()}
			default:
				snap, err := snapshots.Snapshot(r.Context(), b.ID)
				if err != nil {
					cfg.log(r.Context(), "access snapshot unavailable", "brand_id", b.ID, "error", err)
					cfg.errorHandler(w, r, errors.Join(brand.ErrSnapshotUnavailable, err))
					return
				}
				resolved = &Resolved{Decision: Resolve(m.Role, snap), Snapshot: snap}
			}

			next.ServeHTTP(w, r.WithContext(WithResolved(r.Context(), resolved)))
		})
	}
}

// RequireReadAccess gates endpoints that read brand-scoped data.
func RequireReadAccess(opts ...Option) func(http.Handler) http.Handler {
	return requireCapability(func(c Capabilities) bool { return c.CanReadBrandData }, ErrReadBlocked, opts...)
}

// RequireWriteAccess gates endpoints that mutate brand-scoped data.
func RequireWriteAccess(opts ...Option) func(http.Handler) http.Handler {
	return requireCapability(func(c Capabilities) bool { return c.CanWriteBrandData }, ErrWriteBlocked, opts...)
}

func requireCapability(allowed func(Capabilities) bool, blockErr error, opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolved, ok := ResolvedFromContext(r.Context())
			if !ok {
				cfg.errorHandler(w, r, ErrNoDecisionInContext)
				return
			}
			if !allowed(resolved.Decision.Capabilities) {
				cfg.log(r.Context(), "access blocked", "code", resolved.Decision.Code)
				cfg.errorHandler(w, r, &BlockedError{Code: resolved.Decision.Code, err: blockErr})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BlockedError carries the decision code alongside the generic blocked
// sentinel so error handlers can map it to the exact user-facing status.
type BlockedError struct {
	Code Code
	err  error
}

// Error implements the error interface.
func (e *BlockedError) Error() string {
	return string(e.Code)
}

// Unwrap exposes the underlying read/write sentinel.
func (e *BlockedError) Unwrap() error {
	return e.err
}

func lookupBrand(ctx context.Context, cfg *config, provider brand.Provider, identifier string) (*brand.Brand, error) {
	if cached, ok := cfg.cache.Get(ctx, identifier); ok {
		return cached, nil
	}

	b, err := provider.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	cfg.cache.Set(ctx, identifier, b, cfg.cacheTTL)
	return b, nil
}
