package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/brandkit/modules/catalog"
	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/brand"
	"github.com/brandkit/brandkit/pkg/bulk"
)

type trackingMemberships struct {
	anyCalls  int
	roleCalls int
}

func (m *trackingMemberships) RoleForBrand(context.Context, uuid.UUID, uuid.UUID) (access.Role, error) {
	m.roleCalls++
	return "", access.ErrNoMembership
}

func (m *trackingMemberships) HasAnyMembership(context.Context, uuid.UUID) (bool, error) {
	m.anyCalls++
	return true, nil
}

type missingBrands struct{}

func (missingBrands) GetByIdentifier(context.Context, string) (*brand.Brand, error) {
	return nil, brand.ErrBrandNotFound
}

func TestRouterBrandlessRequests(t *testing.T) {
	t.Parallel()

	validator, err := bulk.NewValidator(nil)
	require.NoError(t, err)
	h := catalog.NewHandler(catalog.NewStore(nil), validator, nil, nil)

	memberships := &trackingMemberships{}
	router := catalog.Router(h, catalog.Deps{
		Identity: access.IdentitySourceFunc(func(*http.Request) (access.Identity, bool, error) {
			return access.Identity{UserID: uuid.New()}, true, nil
		}),
		Brands:      missingBrands{},
		Resolver:    brand.NewHeaderResolver(""),
		Memberships: memberships,
		Snapshots: brand.SnapshotSourceFunc(func(context.Context, uuid.UUID) (*brand.AccessSnapshot, error) {
			t.Fatal("snapshot source must not be reached without a brand")
			return nil, nil
		}),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No brand selected")
	assert.Zero(t, memberships.anyCalls, "brand-less requests stop before any membership-wide lookup")
}
