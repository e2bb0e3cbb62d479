package brand

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithBrand adds a brand to the context.
func WithBrand(ctx context.Context, b *Brand) context.Context {
	return context.WithValue(ctx, contextKey{}, b)
}

// FromContext retrieves the brand from the context.
// Returns nil, false if no brand is found.
func FromContext(ctx context.Context) (*Brand, bool) {
	b, ok := ctx.Value(contextKey{}).(*Brand)
	return b, ok
}

// IDFromContext retrieves just the brand ID from the context.
// Returns zero UUID and false if no brand is found.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	b, ok := FromContext(ctx)
	if !ok || b == nil {
		return uuid.UUID{}, false
	}
	return b.ID, true
}

// MustFromContext retrieves the brand from the context.
// Panics if no brand is found. Use this only in handlers
// that absolutely require a brand to function.
func MustFromContext(ctx context.Context) *Brand {
	b, ok := FromContext(ctx)
	if !ok || b == nil {
		panic("brand: no brand in context")
	}
	return b
}

// LoggerExtractor returns a ContextExtractor for the logger that extracts brand ID from context
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("brand_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
