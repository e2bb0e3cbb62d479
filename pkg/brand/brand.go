package brand

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Brand represents a tenant in the platform with the minimal information
// needed for request-scoped operations and UI display.
type Brand struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo_url"`
	PlanID    string    `json:"plan_id"`
	CreatedAt time.Time `json:"created_at"`
}

// QualificationStatus tracks whether a brand has completed onboarding
// qualification. Unqualified brands cannot access brand-scoped data.
type QualificationStatus string

const (
	QualificationUnqualified QualificationStatus = "unqualified"
	QualificationQualified   QualificationStatus = "qualified"
)

// OperationalStatus tracks platform-level moderation state.
type OperationalStatus string

const (
	OperationalActive    OperationalStatus = "active"
	OperationalSuspended OperationalStatus = "suspended"
)

// BillingStatus tracks the brand's billing lifecycle.
type BillingStatus string

const (
	BillingUnconfigured   BillingStatus = "unconfigured"
	BillingActive         BillingStatus = "active"
	BillingPendingPayment BillingStatus = "pending_payment"
	BillingPastDue        BillingStatus = "past_due"
	BillingCancelled      BillingStatus = "cancelled"
)

// UnlimitedSKUs indicates no SKU ceiling for a plan (-1 chosen for SQL compatibility).
const UnlimitedSKUs int64 = -1

// AccessSnapshot is an immutable read of a brand's lifecycle state at
// evaluation time. A fresh snapshot is produced per resolution call and
// is never mutated or cached across requests, since the underlying
// billing state can change between calls.
type AccessSnapshot struct {
	BrandID             uuid.UUID           `json:"brand_id"`
	QualificationStatus QualificationStatus `json:"qualification_status"`
	OperationalStatus   OperationalStatus   `json:"operational_status"`
	BillingStatus       BillingStatus       `json:"billing_status"`
	PlanID              string              `json:"plan_id"`
	PlanCurrency        string              `json:"plan_currency"`
	UsedSKUCount        int64               `json:"used_sku_count"`
	SKULimit            int64               `json:"sku_limit"` // -1 represents unlimited
}

// SafeSnapshot returns the snapshot used when a brand has no billing or
// qualification rows yet. It resolves to a blocked decision: the system
// fails closed on missing configuration, never open.
func SafeSnapshot(brandID uuid.UUID) *AccessSnapshot {
	return &AccessSnapshot{
		BrandID:             brandID,
		QualificationStatus: QualificationUnqualified,
		OperationalStatus:   OperationalActive,
		BillingStatus:       BillingUnconfigured,
		SKULimit:            UnlimitedSKUs,
	}
}

// Provider loads brand records from a data source.
// Implementations should handle various identifier formats
// (UUID, slug, etc.) based on application needs.
type Provider interface {
	// GetByIdentifier retrieves a brand using any unique identifier.
	// Returns ErrBrandNotFound if no brand matches the identifier.
	GetByIdentifier(ctx context.Context, identifier string) (*Brand, error)
}

// SnapshotSource produces the current AccessSnapshot for a brand.
// Implementations must return SafeSnapshot-equivalent state (not an
// error) when the brand exists but its control rows are missing.
type SnapshotSource interface {
	Snapshot(ctx context.Context, brandID uuid.UUID) (*AccessSnapshot, error)
}

// SnapshotSourceFunc is an adapter to allow ordinary functions as SnapshotSources.
type SnapshotSourceFunc func(ctx context.Context, brandID uuid.UUID) (*AccessSnapshot, error)

// Snapshot calls the function.
func (f SnapshotSourceFunc) Snapshot(ctx context.Context, brandID uuid.UUID) (*AccessSnapshot, error) {
	return f(ctx, brandID)
}
