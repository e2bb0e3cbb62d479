package catalog

import (
	"github.com/brandkit/brandkit/pkg/paging"
)

// ProductFields is the sortable-field registry for the products table.
// Logical names are the caller-facing sort keys; unknown names are
// rejected before any query is built.
var ProductFields = paging.MustFieldRegistry(
	paging.Field{Name: "id", Column: "id"},
	paging.Field{Name: "sku", Column: "sku"},
	paging.Field{Name: "name", Column: "name"},
	paging.Field{Name: "category", Column: "category"},
	paging.Field{Name: "status", Column: "status"},
	paging.Field{Name: "price", Column: "price_cents"},
	paging.Field{Name: "created_at", Column: "created_at"},
	paging.Field{Name: "updated_at", Column: "updated_at"},
)

// DefaultSortField orders product lists by recency when the caller does
// not specify a sort.
const DefaultSortField = "created_at"
