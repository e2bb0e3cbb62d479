package quota_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/brand"
	"github.com/brandkit/brandkit/pkg/quota"
)

func allowed() access.Decision {
	return access.Resolve(access.RoleMember, &brand.AccessSnapshot{
		QualificationStatus: brand.QualificationQualified,
		OperationalStatus:   brand.OperationalActive,
		BillingStatus:       brand.BillingActive,
	})
}

func snapshotWith(used, limit int64) *brand.AccessSnapshot {
	return &brand.AccessSnapshot{
		BrandID:      uuid.New(),
		UsedSKUCount: used,
		SKULimit:     limit,
	}
}

func TestResolveSKUAccess(t *testing.T) {
	t.Parallel()

	t.Run("within limit resolves ok", func(t *testing.T) {
		t.Parallel()

		a := quota.ResolveSKUAccess(allowed(), snapshotWith(99, 100), 1)
		assert.Equal(t, quota.StatusOK, a.Status)
		assert.False(t, a.Blocked())
		assert.Zero(t, a.WouldExceedBy)
	})

	t.Run("blocked exactly when used plus intended exceeds limit", func(t *testing.T) {
		t.Parallel()

		// 100 used of 100: one more SKU is one over.
		a := quota.ResolveSKUAccess(allowed(), snapshotWith(100, 100), 1)
		assert.True(t, a.Blocked())
		assert.Equal(t, int64(1), a.WouldExceedBy)

		// Bulk intent reports the full overage.
		a = quota.ResolveSKUAccess(allowed(), snapshotWith(90, 100), 25)
		assert.True(t, a.Blocked())
		assert.Equal(t, int64(15), a.WouldExceedBy)
	})

	t.Run("zero intended never blocks within limit", func(t *testing.T) {
		t.Parallel()

		a := quota.ResolveSKUAccess(allowed(), snapshotWith(100, 100), 0)
		assert.False(t, a.Blocked())
	})

	t.Run("unlimited plan always resolves ok", func(t *testing.T) {
		t.Parallel()

		a := quota.ResolveSKUAccess(allowed(), snapshotWith(1_000_000, brand.UnlimitedSKUs), 50_000)
		assert.False(t, a.Blocked())
	})

	t.Run("nil snapshot resolves ok once write access passed", func(t *testing.T) {
		t.Parallel()

		a := quota.ResolveSKUAccess(allowed(), nil, 10)
		assert.False(t, a.Blocked())
	})

	t.Run("write gate short-circuits before quota", func(t *testing.T) {
		t.Parallel()

		readonly := access.Resolve(access.RoleMember, &brand.AccessSnapshot{
			QualificationStatus: brand.QualificationQualified,
			OperationalStatus:   brand.OperationalActive,
			BillingStatus:       brand.BillingPastDue,
		})

		// Plenty of headroom, still blocked: no write capability.
		a := quota.ResolveSKUAccess(readonly, snapshotWith(0, 100), 1)
		assert.True(t, a.Blocked())
		assert.Zero(t, a.WouldExceedBy)
	})
}

func TestUsagePercentage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		used, limit int64
		want        int
	}{
		{"simple fraction", 33, 100, 33},
		{"rounds half up", 1, 3, 33},
		{"rounds up past half", 2, 3, 67},
		{"full", 100, 100, 100},
		{"zero of zero", 0, 0, 0},
		{"used with zero limit", 5, 0, 100},
		{"unlimited", 500, brand.UnlimitedSKUs, -1},
		{"over limit caps at 100", 150, 100, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, quota.UsagePercentage(tc.used, tc.limit))
		})
	}
}

func TestService(t *testing.T) {
	t.Parallel()

	t.Run("panics without counter", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { quota.NewService(nil) })
	})

	t.Run("reads usage through the counter", func(t *testing.T) {
		t.Parallel()

		svc := quota.NewService(func(context.Context, uuid.UUID) (int64, error) {
			return 42, nil
		})

		used, limit, err := svc.Usage(context.Background(), snapshotWith(0, 100))
		require.NoError(t, err)
		assert.Equal(t, int64(42), used)
		assert.Equal(t, int64(100), limit)
	})

	t.Run("counter failure surfaces the sentinel", func(t *testing.T) {
		t.Parallel()

		svc := quota.NewService(func(context.Context, uuid.UUID) (int64, error) {
			return 0, assert.AnError
		})

		_, _, err := svc.Usage(context.Background(), snapshotWith(0, 100))
		assert.ErrorIs(t, err, quota.ErrFailedToCountUsage)
	})

	t.Run("nil snapshot reports unlimited without calling the counter", func(t *testing.T) {
		t.Parallel()

		svc := quota.NewService(func(context.Context, uuid.UUID) (int64, error) {
			t.Fatal("counter must not be called")
			return 0, nil
		})

		used, limit, err := svc.Usage(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, used)
		assert.Equal(t, brand.UnlimitedSKUs, limit)
	})
}
