package quota

import (
	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/brand"
)

// Status is the SKU quota verdict.
type Status string

const (
	StatusOK      Status = "ok"
	StatusBlocked Status = "blocked"
)

// SKUAccess is the quota decision for an intended SKU creation. Like the
// access decision it is derived per call, never stored.
type SKUAccess struct {
	Status Status `json:"status"`
	// WouldExceedBy is how far past the plan ceiling the intended
	// creation would land. Zero when Status is ok.
	WouldExceedBy int64 `json:"would_exceed_by,omitempty"`
}

// Blocked reports whether the quota decision denies the creation.
func (a SKUAccess) Blocked() bool {
	return a.Status == StatusBlocked
}

// ResolveSKUAccess evaluates whether a brand may create intendedCount new
// SKUs. The write gate short-circuits first: this resolver is only
// meaningful after access.RequireWriteAccess passes, and a decision
// without write capability resolves to blocked regardless of usage.
//
// A plan with an unlimited SKU ceiling always resolves ok. Otherwise the
// creation is blocked iff used + intended would exceed the ceiling.
func ResolveSKUAccess(d access.Decision, snap *brand.AccessSnapshot, intendedCount int64) SKUAccess {
	if !d.Capabilities.CanWriteBrandData {
		return SKUAccess{Status: StatusBlocked}
	}

	if snap == nil || snap.SKULimit == brand.UnlimitedSKUs {
		return SKUAccess{Status: StatusOK}
	}

	if intendedCount < 0 {
		intendedCount = 0
	}

	if over := snap.UsedSKUCount + intendedCount - snap.SKULimit; over > 0 {
		return SKUAccess{Status: StatusBlocked, WouldExceedBy: over}
	}

	return SKUAccess{Status: StatusOK}
}

// UsagePercentage returns SKU usage as a whole percentage with standard
// rounding (33/100 -> 33, 2/3 -> 67). An unlimited ceiling returns -1;
// a zero ceiling with zero usage returns 0 rather than dividing.
func UsagePercentage(used, limit int64) int {
	if limit == brand.UnlimitedSKUs {
		return -1
	}
	if limit <= 0 {
		if used > 0 {
			return 100
		}
		return 0
	}

	pct := int((used*100 + limit/2) / limit)
	return min(pct, 100)
}
