package access

import (
	"context"
	"log/slog"

	"github.com/brandkit/brandkit/pkg/brand"
)

type identityCtxKey struct{}
type membershipCtxKey struct{}
type resolvedCtxKey struct{}

// Resolved bundles the per-request access resolution results: the fresh
// snapshot the decision was derived from plus the decision itself.
type Resolved struct {
	Decision Decision
	Snapshot *brand.AccessSnapshot
}

// WithIdentity adds the verified caller identity to the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromContext retrieves the caller identity from the context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}

// WithMembership adds the caller's brand membership to the context.
func WithMembership(ctx context.Context, m Membership) context.Context {
	return context.WithValue(ctx, membershipCtxKey{}, m)
}

// MembershipFromContext retrieves the brand membership from the context.
// Returns false when the caller has no membership in the active brand;
// role-agnostic endpoints treat that as an anonymous-within-brand request.
func MembershipFromContext(ctx context.Context) (Membership, bool) {
	m, ok := ctx.Value(membershipCtxKey{}).(Membership)
	return m, ok
}

// WithResolved adds the resolved access decision and snapshot to the context.
func WithResolved(ctx context.Context, r *Resolved) context.Context {
	return context.WithValue(ctx, resolvedCtxKey{}, r)
}

// ResolvedFromContext retrieves the resolved access decision from the context.
func ResolvedFromContext(ctx context.Context) (*Resolved, bool) {
	r, ok := ctx.Value(resolvedCtxKey{}).(*Resolved)
	return r, ok
}

// DecisionFromContext retrieves just the decision from the context.
func DecisionFromContext(ctx context.Context) (Decision, bool) {
	r, ok := ResolvedFromContext(ctx)
	if !ok || r == nil {
		return Decision{}, false
	}
	return r.Decision, true
}

// LoggerExtractor returns a ContextExtractor for the logger that extracts
// the decision code from context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if d, ok := DecisionFromContext(ctx); ok {
			return slog.String("access_decision", string(d.Code)), true
		}
		return slog.Attr{}, false
	}
}
