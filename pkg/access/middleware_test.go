package access_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/brand"
)

type fixture struct {
	userID  uuid.UUID
	brandID uuid.UUID

	role          access.Role
	roleErr       error
	anyMembership bool

	snapshot    *brand.AccessSnapshot
	snapshotErr error

	brandLookups int
}

func (f *fixture) identity() access.IdentitySource {
	return access.IdentitySourceFunc(func(r *http.Request) (access.Identity, bool, error) {
		if r.Header.Get("Authorization") == "" {
			return access.Identity{}, false, nil
		}
		return access.Identity{UserID: f.userID}, true, nil
	})
}

func (f *fixture) provider() brand.Provider {
	return providerFunc(func(_ context.Context, identifier string) (*brand.Brand, error) {
		f.brandLookups++
		if identifier != "acme" && identifier != f.brandID.String() {
			return nil, brand.ErrBrandNotFound
		}
		return &brand.Brand{ID: f.brandID, Slug: "acme", Name: "Acme"}, nil
	})
}

type providerFunc func(ctx context.Context, identifier string) (*brand.Brand, error)

func (f providerFunc) GetByIdentifier(ctx context.Context, identifier string) (*brand.Brand, error) {
	return f(ctx, identifier)
}

func (f *fixture) RoleForBrand(_ context.Context, userID, brandID uuid.UUID) (access.Role, error) {
	if f.roleErr != nil {
		return "", f.roleErr
	}
	if userID != f.userID || brandID != f.brandID || f.role == "" {
		return "", access.ErrNoMembership
	}
	return f.role, nil
}

func (f *fixture) HasAnyMembership(context.Context, uuid.UUID) (bool, error) {
	return f.anyMembership, nil
}

func (f *fixture) Snapshot(_ context.Context, brandID uuid.UUID) (*brand.AccessSnapshot, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	if f.snapshot != nil {
		return f.snapshot, nil
	}
	return brand.SafeSnapshot(brandID), nil
}

func newFixture() *fixture {
	f := &fixture{
		userID:        uuid.New(),
		brandID:       uuid.New(),
		role:          access.RoleMember,
		anyMembership: true,
	}
	f.snapshot = &brand.AccessSnapshot{
		BrandID:             f.brandID,
		QualificationStatus: brand.QualificationQualified,
		OperationalStatus:   brand.OperationalActive,
		BillingStatus:       brand.BillingActive,
		SKULimit:            100,
	}
	return f
}

// chain mounts the full middleware stack the way a brand-scoped module
// does, ending in a handler that records the resolved decision.
func chain(f *fixture, gate func(...access.Option) func(http.Handler) http.Handler) (http.Handler, *access.Resolved) {
	captured := &access.Resolved{}

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if resolved, ok := access.ResolvedFromContext(r.Context()); ok {
			*captured = *resolved
		}
		w.WriteHeader(http.StatusOK)
	})

	if gate != nil {
		h = gate()(h)
	}
	h = access.ResolveAccess(f, f)(h)
	h = access.ResolveBrandMembership(brand.NewHeaderResolver(""), f.provider(), f)(h)
	h = access.Authenticate(f.identity())(h)
	return h, captured
}

func doRequest(t *testing.T, h http.Handler, authenticated bool, brandHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	if authenticated {
		req.Header.Set("Authorization", "Bearer token")
	}
	if brandHeader != "" {
		req.Header.Set("X-Brand-ID", brandHeader)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareChain(t *testing.T) {
	t.Parallel()

	t.Run("healthy brand passes read and write gates", func(t *testing.T) {
		t.Parallel()

		f := newFixture()

		h, resolved := chain(f, access.RequireReadAccess)
		rec := doRequest(t, h, true, "acme")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, access.CodeAllowed, resolved.Decision.Code)
		require.NotNil(t, resolved.Snapshot)
		assert.Equal(t, f.brandID, resolved.Snapshot.BrandID)

		h, _ = chain(f, access.RequireWriteAccess)
		rec = doRequest(t, h, true, "acme")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unauthenticated requests are rejected first", func(t *testing.T) {
		t.Parallel()

		h, _ := chain(newFixture(), access.RequireReadAccess)
		rec := doRequest(t, h, false, "acme")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("past due allows reads and blocks writes", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.snapshot.BillingStatus = brand.BillingPastDue

		h, resolved := chain(f, access.RequireReadAccess)
		rec := doRequest(t, h, true, "acme")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, access.CodeBlockedPastDueReadonly, resolved.Decision.Code)

		h, _ = chain(f, access.RequireWriteAccess)
		rec = doRequest(t, h, true, "acme")
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	})

	t.Run("suspended brand blocks reads", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.snapshot.OperationalStatus = brand.OperationalSuspended

		h, _ := chain(f, access.RequireReadAccess)
		rec := doRequest(t, h, true, "acme")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("pending payment maps to payment required", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.snapshot.BillingStatus = brand.BillingPendingPayment

		h, _ := chain(f, access.RequireReadAccess)
		rec := doRequest(t, h, true, "acme")
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	})

	t.Run("no brand selected with memberships elsewhere", func(t *testing.T) {
		t.Parallel()

		f := newFixture()

		h, resolved := chain(f, nil)
		rec := doRequest(t, h, true, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, access.CodeBlockedNoActiveBrand, resolved.Decision.Code)

		// The read gate turns the decision into a 400.
		h, _ = chain(f, access.RequireReadAccess)
		rec = doRequest(t, h, true, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no membership anywhere", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.anyMembership = false

		h, resolved := chain(f, nil)
		rec := doRequest(t, h, true, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, access.CodeBlockedNoMembership, resolved.Decision.Code)
	})

	t.Run("member of other brands but not this one", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.role = ""

		h, resolved := chain(f, nil)
		rec := doRequest(t, h, true, "acme")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, access.CodeBlockedNoMembership, resolved.Decision.Code)
	})

	t.Run("unknown brand identifier behaves like none selected", func(t *testing.T) {
		t.Parallel()

		f := newFixture()

		h, resolved := chain(f, nil)
		rec := doRequest(t, h, true, "nonexistent")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, access.CodeBlockedNoActiveBrand, resolved.Decision.Code)
	})

	t.Run("snapshot failure is a server fault, not a policy block", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.snapshotErr = assert.AnError

		h, _ := chain(f, access.RequireReadAccess)
		rec := doRequest(t, h, true, "acme")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRequireBrand(t *testing.T) {
	t.Parallel()

	handler := access.RequireBrand()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("passes with brand in context", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(brand.WithBrand(req.Context(), &brand.Brand{ID: uuid.New()}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects without brand", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBrandLookupCache(t *testing.T) {
	t.Parallel()

	f := newFixture()
	cache := brand.NewInMemoryCache()
	t.Cleanup(func() { _ = cache.Close() })

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h = access.ResolveBrandMembership(brand.NewHeaderResolver(""), f.provider(), f, access.WithBrandCache(cache))(h)
	h = access.Authenticate(f.identity())(h)

	for range 3 {
		rec := doRequest(t, h, true, "acme")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Brand identity is cacheable; only the first request hits the provider.
	assert.Equal(t, 1, f.brandLookups)
}
