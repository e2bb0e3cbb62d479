package quota

import (
	"encoding/json"
	"net/http"

	"github.com/brandkit/brandkit/pkg/access"
)

// IntendedCountFunc extracts the number of SKUs a request intends to
// create. Single-item create endpoints return a constant 1; bulk import
// endpoints inspect the payload.
type IntendedCountFunc func(r *http.Request) (int64, error)

// One is an IntendedCountFunc for endpoints creating a single SKU.
func One(*http.Request) (int64, error) { return 1, nil }

// RequireCapacity gates SKU-creating writes on the plan's SKU ceiling.
// Mount after access.RequireWriteAccess: the write gate short-circuits
// first, and this middleware assumes a resolved decision in context.
func RequireCapacity(intended IntendedCountFunc, opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolved, ok := access.ResolvedFromContext(r.Context())
			if !ok {
				cfg.errorHandler(w, r, access.ErrNoDecisionInContext)
				return
			}

			count, err := intended(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if a := ResolveSKUAccess(resolved.Decision, resolved.Snapshot, count); a.Blocked() {
				cfg.errorHandler(w, r, &LimitError{Access: a, Intended: count})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LimitError carries the quota decision so clients can render the exact
// overage against their plan.
type LimitError struct {
	Access   SKUAccess
	Intended int64
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return ErrSKULimitExceeded.Error()
}

// Unwrap exposes the quota sentinel.
func (e *LimitError) Unwrap() error {
	return ErrSKULimitExceeded
}

// ErrorHandler handles quota gate failures.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	errorHandler ErrorHandler
}

// Option configures the quota middleware.
type Option func(*config)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if le, ok := errAsLimit(err); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error":           "sku_limit_exceeded",
			"intended_count":  le.Intended,
			"would_exceed_by": le.Access.WouldExceedBy,
		})
		return
	}
	access.DefaultErrorHandler(w, r, err)
}

func errAsLimit(err error) (*LimitError, bool) {
	le, ok := err.(*LimitError)
	return le, ok
}
