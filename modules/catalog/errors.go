package catalog

import "errors"

var (
	// ErrProductNotFound is returned when a product lookup misses.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProduct is returned when product data fails validation.
	ErrInvalidProduct = errors.New("invalid product data")

	// ErrDuplicateSKU is returned when a SKU already exists in the brand.
	ErrDuplicateSKU = errors.New("duplicate sku")

	// ErrUnsupportedOperation is returned for bulk operation types the
	// product store cannot execute.
	ErrUnsupportedOperation = errors.New("unsupported bulk operation for products")

	// ErrInvalidUpdateField is returned when bulk update data names a
	// column outside the writable set.
	ErrInvalidUpdateField = errors.New("invalid product update field")

	// ErrInvalidFilterField is returned when a bulk filter selection
	// names a column or operator outside the filterable set.
	ErrInvalidFilterField = errors.New("invalid product filter field")

	// ErrImportFailed is returned when a CSV import cannot be processed.
	ErrImportFailed = errors.New("import failed")

	// ErrExportFailed is returned when a CSV export cannot be produced.
	ErrExportFailed = errors.New("export failed")
)
