package catalog_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/brandkit/modules/catalog"
)

func validProduct() *catalog.Product {
	return &catalog.Product{
		ID:        uuid.New(),
		BrandID:   uuid.New(),
		SKU:       "JKT-001",
		Name:      "Alpine Jacket",
		Category:  "outerwear",
		PriceCent: 12900,
		Currency:  "USD",
		Status:    catalog.StatusActive,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestProductValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid product passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validProduct().Validate())
	})

	cases := []struct {
		name   string
		mutate func(*catalog.Product)
	}{
		{"missing sku", func(p *catalog.Product) { p.SKU = "" }},
		{"blank sku", func(p *catalog.Product) { p.SKU = "   " }},
		{"sku too long", func(p *catalog.Product) { p.SKU = strings.Repeat("X", catalog.MaxSKULength+1) }},
		{"missing name", func(p *catalog.Product) { p.Name = "" }},
		{"name too long", func(p *catalog.Product) { p.Name = strings.Repeat("x", catalog.MaxNameLength+1) }},
		{"negative price", func(p *catalog.Product) { p.PriceCent = -1 }},
		{"unknown status", func(p *catalog.Product) { p.Status = "discontinued" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := validProduct()
			tc.mutate(p)
			assert.ErrorIs(t, p.Validate(), catalog.ErrInvalidProduct)
		})
	}

	t.Run("length boundaries are inclusive", func(t *testing.T) {
		t.Parallel()

		p := validProduct()
		p.SKU = strings.Repeat("X", catalog.MaxSKULength)
		p.Name = strings.Repeat("x", catalog.MaxNameLength)
		assert.NoError(t, p.Validate())
	})
}

func TestProductPaging(t *testing.T) {
	t.Parallel()

	p := validProduct()

	t.Run("paging id is the uuid wire form", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, p.ID.String(), p.PagingID())
	})

	t.Run("paging values round through the field registry columns", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "JKT-001", p.PagingValue("sku"))
		assert.Equal(t, "Alpine Jacket", p.PagingValue("name"))
		assert.Equal(t, "outerwear", p.PagingValue("category"))
		assert.Equal(t, "active", p.PagingValue("status"))
		assert.Equal(t, "12900", p.PagingValue("price_cents"))
		assert.Equal(t, "2026-03-01T10:00:00Z", p.PagingValue("created_at"))
		assert.Empty(t, p.PagingValue("color"))
	})

	t.Run("registry resolves the caller-facing sort names", func(t *testing.T) {
		t.Parallel()

		f, err := catalog.ProductFields.Resolve("price")
		require.NoError(t, err)
		assert.Equal(t, "price_cents", f.Column)

		_, err = catalog.ProductFields.Resolve("season")
		assert.Error(t, err)

		f, err = catalog.ProductFields.Resolve(catalog.DefaultSortField)
		require.NoError(t, err)
		assert.Equal(t, "created_at", f.Column)
	})
}
