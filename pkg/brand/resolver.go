package brand

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Resolver extracts the active brand identifier from an HTTP request.
type Resolver interface {
	// Resolve extracts the brand identifier from the request.
	// Returns empty string if no brand identifier is found.
	// Returns error if the extraction fails.
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc is an adapter to allow the use of ordinary functions as Resolvers.
type ResolverFunc func(r *http.Request) (string, error)

// Resolve calls the function.
func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// HeaderResolver extracts the brand identifier from an HTTP header.
type HeaderResolver struct {
	// HeaderName is the name of the header to read (e.g., "X-Brand-ID")
	HeaderName string
}

// NewHeaderResolver creates a new header resolver.
func NewHeaderResolver(headerName string) *HeaderResolver {
	if headerName == "" {
		headerName = "X-Brand-ID"
	}
	return &HeaderResolver{HeaderName: headerName}
}

// Resolve extracts the brand identifier from the configured header.
func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	return req.Header.Get(r.HeaderName), nil
}

// PathResolver extracts the brand identifier from a URL path segment.
type PathResolver struct {
	// Position is the 1-based position in the path (e.g., 2 for /brands/{id}/...)
	Position int
}

// NewPathResolver creates a new path resolver.
func NewPathResolver(position int) *PathResolver {
	return &PathResolver{Position: position}
}

// Resolve extracts the brand identifier from the specified path position.
func (r *PathResolver) Resolve(req *http.Request) (string, error) {
	if r.Position < 1 {
		return "", errors.New("invalid path position")
	}

	path := strings.TrimPrefix(req.URL.Path, "/")
	path = strings.TrimSuffix(path, "/")

	if path == "" {
		return "", nil
	}

	parts := strings.Split(path, "/")
	if r.Position > len(parts) {
		return "", nil
	}

	return parts[r.Position-1], nil
}

// QueryResolver extracts the brand identifier from a query parameter.
// Useful for brand-switcher UIs where the active brand rides along
// as an explicit parameter.
type QueryResolver struct {
	// Param is the query parameter name (e.g., "brand_id")
	Param string
}

// NewQueryResolver creates a new query parameter resolver.
func NewQueryResolver(param string) *QueryResolver {
	if param == "" {
		param = "brand_id"
	}
	return &QueryResolver{Param: param}
}

// Resolve extracts the brand identifier from the configured query parameter.
func (r *QueryResolver) Resolve(req *http.Request) (string, error) {
	return req.URL.Query().Get(r.Param), nil
}

// CompositeResolver tries multiple resolvers in order until one succeeds.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a new composite resolver.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

// Resolve tries each resolver in order, returning the first non-empty result.
func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	var errs []error

	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id != "" {
			return id, nil
		}
	}

	if len(errs) > 0 {
		return "", fmt.Errorf("composite resolver errors: %w", errors.Join(errs...))
	}

	return "", nil
}
