package access

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/brandkit/brandkit/pkg/brand"
)

// ErrorHandler handles errors that occur during access resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	cache        brand.Cache
	cacheTTL     time.Duration
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

func newConfig(opts ...Option) *config {
	cfg := &config{
		cache:        brand.NewNoOpCache(),
		cacheTTL:     5 * time.Minute,
		errorHandler: DefaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithBrandCache sets a cache for brand identity lookups. Only brand
// records are cached; snapshots and decisions never are.
func WithBrandCache(cache brand.Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL sets the TTL for cached brand lookups.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func (c *config) log(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.DebugContext(ctx, msg, args...)
	}
}

// DefaultErrorHandler maps access errors to HTTP responses. Policy
// blocks surface the exact decision verbatim; they are never retried.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		code, msg := statusForCode(blocked.Code)
		http.Error(w, msg, code)
		return
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrNoBrandSelected):
		http.Error(w, "No brand selected", http.StatusBadRequest)
	case errors.Is(err, ErrNoMembership):
		http.Error(w, "No brand membership", http.StatusForbidden)
	case errors.Is(err, brand.ErrBrandNotFound):
		http.Error(w, "Brand not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func statusForCode(code Code) (int, string) {
	switch code {
	case CodeBlockedPendingQualification:
		return http.StatusForbidden, "Brand is pending qualification"
	case CodeBlockedSuspended:
		return http.StatusForbidden, "Brand is suspended"
	case CodeBlockedCancelled:
		return http.StatusForbidden, "Brand subscription is cancelled"
	case CodeBlockedPendingPayment:
		return http.StatusPaymentRequired, "Payment required"
	case CodeBlockedPastDueReadonly:
		return http.StatusPaymentRequired, "Account past due: read-only access"
	case CodeBlockedNoActiveBrand:
		return http.StatusBadRequest, "No brand selected"
	case CodeBlockedNoMembership:
		return http.StatusForbidden, "No brand membership"
	default:
		return http.StatusForbidden, "Forbidden"
	}
}
