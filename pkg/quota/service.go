package quota

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/brandkit/brandkit/pkg/brand"
)

// CounterFunc returns the current SKU usage for a brand.
// Should be fast: cache or aggregate at repository level.
type CounterFunc func(ctx context.Context, brandID uuid.UUID) (int64, error)

// Service reads live SKU usage for dashboards and snapshot building.
// The snapshot's UsedSKUCount is produced through this service so that
// the access path and the UI agree on the same number.
type Service struct {
	counter CounterFunc
}

// NewService creates a usage service backed by the given counter.
// Panics if counter is nil to fail fast during initialization.
func NewService(counter CounterFunc) *Service {
	if counter == nil {
		panic("quota: CounterFunc is required")
	}
	return &Service{counter: counter}
}

// Usage returns the brand's current SKU usage and the plan ceiling from
// the snapshot.
func (s *Service) Usage(ctx context.Context, snap *brand.AccessSnapshot) (used, limit int64, err error) {
	if snap == nil {
		return 0, brand.UnlimitedSKUs, nil
	}

	used, err = s.counter(ctx, snap.BrandID)
	if err != nil {
		return 0, 0, errors.Join(ErrFailedToCountUsage, err)
	}
	return used, snap.SKULimit, nil
}

// UsagePercentageFor returns the brand's SKU usage as a whole percentage.
// Returns 0 when usage cannot be obtained; -1 for unlimited plans.
func (s *Service) UsagePercentageFor(ctx context.Context, snap *brand.AccessSnapshot) int {
	used, limit, err := s.Usage(ctx, snap)
	if err != nil {
		return 0
	}
	return UsagePercentage(used, limit)
}
