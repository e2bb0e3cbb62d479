package catalog

import (
	"github.com/go-chi/chi/v5"

	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/brand"
	"github.com/brandkit/brandkit/pkg/quota"
)

// Deps are the collaborators the catalog's middleware chain resolves
// requests through.
type Deps struct {
	Identity    access.IdentitySource
	Brands      brand.Provider
	Resolver    brand.Resolver
	Memberships access.MembershipSource
	Snapshots   brand.SnapshotSource
}

// Router mounts the product catalog under its full access chain:
// authentication, brand and membership resolution, the brand
// requirement, the access decision, then per-route capability and quota
// gates. Reads work in the past-due readonly state; writes do not.
func Router(h *Handler, deps Deps, opts ...access.Option) chi.Router {
	r := chi.NewRouter()

	r.Use(access.Authenticate(deps.Identity, opts...))
	r.Use(access.ResolveBrandMembership(deps.Resolver, deps.Brands, deps.Memberships, opts...))
	r.Use(access.RequireBrand(opts...))
	r.Use(access.ResolveAccess(deps.Snapshots, deps.Memberships, opts...))

	r.Group(func(r chi.Router) {
		r.Use(access.RequireReadAccess(opts...))

		r.Get("/products", h.List)
		r.Get("/products/usage", h.Usage)
		r.Get("/products/{id}", h.Get)
	})

	r.Group(func(r chi.Router) {
		r.Use(access.RequireWriteAccess(opts...))

		r.With(quota.RequireCapacity(quota.One)).Post("/products", h.Create)
		r.Post("/products/bulk/{operation}", h.Bulk)
		r.Post("/products/import", h.Import)
		r.Post("/products/export", h.Export)
	})

	return r
}
