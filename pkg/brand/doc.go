// Package brand provides the tenant model for the product-data platform:
// brand identity records, lifecycle snapshots, and request-scoped context
// propagation.
//
// The package is built around three core concepts:
//
//  1. Resolvers - Extract the active brand identifier from HTTP requests
//     (header, path segment, query parameter, or a composite of these)
//  2. Providers - Load brand records from a data source, optionally cached
//  3. SnapshotSource - Produces a fresh AccessSnapshot of the brand's
//     qualification, operational, and billing state per evaluation
//
// Brand identity records change rarely and may be cached (in-memory or
// Redis). AccessSnapshots are deliberately never cached: billing and
// lifecycle state can change between requests, and access decisions must
// always be derived from a fresh read.
//
// A brand with missing billing or qualification rows resolves to
// SafeSnapshot, which downstream access resolution treats as blocked.
// Missing configuration fails closed, never open.
//
// Basic usage:
//
//	resolver := brand.NewCompositeResolver(
//	    brand.NewHeaderResolver("X-Brand-ID"),
//	    brand.NewQueryResolver("brand_id"),
//	)
//
//	b, ok := brand.FromContext(r.Context())
//	if !ok {
//	    // no active brand for this request
//	}
package brand
