package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field length caps enforced on create and CSV import.
const (
	MaxSKULength  = 64
	MaxNameLength = 255
)

// ProductStatus is the catalog lifecycle state of a product.
type ProductStatus string

const (
	StatusDraft    ProductStatus = "draft"
	StatusActive   ProductStatus = "active"
	StatusArchived ProductStatus = "archived"
)

// Product is one SKU-bearing record in a brand's catalog.
type Product struct {
	ID        uuid.UUID     `json:"id"`
	BrandID   uuid.UUID     `json:"brand_id"`
	SKU       string        `json:"sku"`
	Name      string        `json:"name"`
	Category  string        `json:"category,omitempty"`
	Color     string        `json:"color,omitempty"`
	Size      string        `json:"size,omitempty"`
	Material  string        `json:"material,omitempty"`
	Season    string        `json:"season,omitempty"`
	PriceCent int64         `json:"price_cents"`
	Currency  string        `json:"currency"`
	Status    ProductStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Validate checks the invariants shared by the create endpoint and the
// CSV importer. All violations wrap ErrInvalidProduct.
func (p *Product) Validate() error {
	switch {
	case strings.TrimSpace(p.SKU) == "":
		return fmt.Errorf("%w: sku is required", ErrInvalidProduct)
	case len(p.SKU) > MaxSKULength:
		return fmt.Errorf("%w: sku exceeds %d characters", ErrInvalidProduct, MaxSKULength)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case len(p.Name) > MaxNameLength:
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidProduct, MaxNameLength)
	case p.PriceCent < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}

	switch p.Status {
	case StatusDraft, StatusActive, StatusArchived:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidProduct, p.Status)
	}

	return nil
}

// PagingID implements paging.Row.
func (p Product) PagingID() string {
	return p.ID.String()
}

// PagingValue implements paging.Row: the wire form of a sort column's
// value, used to derive the next page cursor.
func (p Product) PagingValue(column string) string {
	switch column {
	case "id":
		return p.ID.String()
	case "sku":
		return p.SKU
	case "name":
		return p.Name
	case "category":
		return p.Category
	case "status":
		return string(p.Status)
	case "price_cents":
		return strconv.FormatInt(p.PriceCent, 10)
	case "created_at":
		return p.CreatedAt.UTC().Format(time.RFC3339Nano)
	case "updated_at":
		return p.UpdatedAt.UTC().Format(time.RFC3339Nano)
	default:
		return ""
	}
}
