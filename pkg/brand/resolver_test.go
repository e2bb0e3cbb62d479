package brand_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/brandkit/pkg/brand"
)

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	t.Run("reads the configured header", func(t *testing.T) {
		t.Parallel()

		r := brand.NewHeaderResolver("X-Acme-Brand")
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("X-Acme-Brand", "acme")

		id, err := r.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("defaults to X-Brand-ID", func(t *testing.T) {
		t.Parallel()

		r := brand.NewHeaderResolver("")
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("X-Brand-ID", "acme")

		id, err := r.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("missing header resolves empty", func(t *testing.T) {
		t.Parallel()

		r := brand.NewHeaderResolver("")
		id, err := r.Resolve(httptest.NewRequest(http.MethodGet, "/products", nil))
		require.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestPathResolver(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		position int
		path     string
		want     string
	}{
		{"second segment", 2, "/brands/acme/products", "acme"},
		{"first segment", 1, "/acme/products", "acme"},
		{"position past path", 5, "/brands/acme", ""},
		{"root path", 1, "/", ""},
		{"trailing slash", 2, "/brands/acme/", "acme"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := brand.NewPathResolver(tc.position)
			id, err := r.Resolve(httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}

	t.Run("invalid position errors", func(t *testing.T) {
		t.Parallel()

		r := brand.NewPathResolver(0)
		_, err := r.Resolve(httptest.NewRequest(http.MethodGet, "/brands/acme", nil))
		assert.Error(t, err)
	})
}

func TestQueryResolver(t *testing.T) {
	t.Parallel()

	t.Run("reads the configured parameter", func(t *testing.T) {
		t.Parallel()

		r := brand.NewQueryResolver("")
		id, err := r.Resolve(httptest.NewRequest(http.MethodGet, "/products?brand_id=acme", nil))
		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	t.Run("first non-empty result wins", func(t *testing.T) {
		t.Parallel()

		r := brand.NewCompositeResolver(
			brand.NewHeaderResolver(""),
			brand.NewQueryResolver(""),
		)

		req := httptest.NewRequest(http.MethodGet, "/products?brand_id=from-query", nil)
		id, err := r.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "from-query", id)

		req.Header.Set("X-Brand-ID", "from-header")
		id, err = r.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "from-header", id)
	})

	t.Run("all empty resolves empty without error", func(t *testing.T) {
		t.Parallel()

		r := brand.NewCompositeResolver(brand.NewHeaderResolver(""), brand.NewQueryResolver(""))
		id, err := r.Resolve(httptest.NewRequest(http.MethodGet, "/products", nil))
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("resolver errors are joined when nothing matches", func(t *testing.T) {
		t.Parallel()

		failing := brand.ResolverFunc(func(*http.Request) (string, error) {
			return "", assert.AnError
		})
		r := brand.NewCompositeResolver(failing, brand.NewHeaderResolver(""))

		_, err := r.Resolve(httptest.NewRequest(http.MethodGet, "/products", nil))
		assert.ErrorIs(t, err, assert.AnError)
	})
}
