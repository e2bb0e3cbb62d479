package brands_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/brandkit/modules/brands"
	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/brand"
)

type fakeRow struct {
	values []any
	err    error
}

// Scan assigns values positionally into dest pointers, mirroring what a
// real row scan would do.
func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		if r.values[i] == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		dv.Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type fakeDB struct {
	queryRow func(sql string, args ...any) pgx.Row
	exec     func(sql string, args ...any) (pgconn.CommandTag, error)

	sqls []string
}

func (f *fakeDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.sqls = append(f.sqls, sql)
	return f.queryRow(sql, args...)
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sqls = append(f.sqls, sql)
	if f.exec == nil {
		return pgconn.CommandTag{}, nil
	}
	return f.exec(sql, args...)
}

func noUsage(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func strPtr(s string) *string { return &s }

func TestNewStore(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		brands.NewStore(&fakeDB{}, nil)
	})
}

func TestGetByIdentifier(t *testing.T) {
	t.Parallel()

	brandID := uuid.New()
	created := time.Now().UTC()
	row := fakeRow{values: []any{brandID, "acme", "Acme", "", "pro", created}}

	t.Run("uuid identifiers query the primary key", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryRow: func(sql string, args ...any) pgx.Row { return row }}
		store := brands.NewStore(db, noUsage)

		b, err := store.GetByIdentifier(context.Background(), brandID.String())
		require.NoError(t, err)
		assert.Equal(t, brandID, b.ID)
		assert.Equal(t, "acme", b.Slug)
		assert.Contains(t, db.sqls[0], "WHERE id")
	})

	t.Run("other identifiers query the slug", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryRow: func(sql string, args ...any) pgx.Row { return row }}
		store := brands.NewStore(db, noUsage)

		_, err := store.GetByIdentifier(context.Background(), "acme")
		require.NoError(t, err)
		assert.Contains(t, db.sqls[0], "WHERE slug")
	})

	t.Run("missing brand", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryRow: func(sql string, args ...any) pgx.Row {
			return fakeRow{err: pgx.ErrNoRows}
		}}
		store := brands.NewStore(db, noUsage)

		_, err := store.GetByIdentifier(context.Background(), "ghost")
		assert.ErrorIs(t, err, brand.ErrBrandNotFound)
	})
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	brandID := uuid.New()

	t.Run("overlays control and plan rows", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryRow: func(sql string, args ...any) pgx.Row {
			return fakeRow{values: []any{
				brandID, "pro",
				strPtr("qualified"), strPtr("active"), strPtr("past_due"),
				strPtr("EUR"), int64Ptr(500),
			}}
		}}
		counter := func(_ context.Context, id uuid.UUID) (int64, error) {
			assert.Equal(t, brandID, id)
			return 137, nil
		}
		store := brands.NewStore(db, counter)

		snap, err := store.Snapshot(context.Background(), brandID)
		require.NoError(t, err)

		assert.Equal(t, brand.QualificationQualified, snap.QualificationStatus)
		assert.Equal(t, brand.OperationalActive, snap.OperationalStatus)
		assert.Equal(t, brand.BillingPastDue, snap.BillingStatus)
		assert.Equal(t, "pro", snap.PlanID)
		assert.Equal(t, "EUR", snap.PlanCurrency)
		assert.Equal(t, int64(500), snap.SKULimit)
		assert.Equal(t, int64(137), snap.UsedSKUCount)
	})

	t.Run("missing control rows fall back to the safe snapshot", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryRow: func(sql string, args ...any) pgx.Row {
			return fakeRow{values: []any{brandID, "pro", nil, nil, nil, nil, nil}}
		}}
		store := brands.NewStore(db, noUsage)

		snap, err := store.Snapshot(context.Background(), brandID)
		require.NoError(t, err)

		safe := brand.SafeSnapshot(brandID)
		assert.Equal(t, safe.QualificationStatus, snap.QualificationStatus)
		assert.Equal(t, safe.OperationalStatus, snap.OperationalStatus)
		assert.Equal(t, safe.BillingStatus, snap.BillingStatus)
		assert.Equal(t, safe.SKULimit, snap.SKULimit)
		assert.Equal(t, "pro", snap.PlanID)
	})

	t.Run("unknown brand", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryRow: func(sql string, args ...any) pgx.Row {
			return fakeRow{err: pgx.ErrNoRows}
		}}
		store := brands.NewStore(db, noUsage)

		_, err := store.Snapshot(context.Background(), brandID)
		assert.ErrorIs(t, err, brand.ErrBrandNotFound)
	})

	t.Run("usage counter failure marks the snapshot unavailable", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryRow: func(sql string, args ...any) pgx.Row {
			return fakeRow{values: []any{brandID, "pro", nil, nil, nil, nil, nil}}
		}}
		counter := func(context.Context, uuid.UUID) (int64, error) {
			return 0, errors.New("count query timed out")
		}
		store := brands.NewStore(db, counter)

		_, err := store.Snapshot(context.Background(), brandID)
		assert.ErrorIs(t, err, brand.ErrSnapshotUnavailable)
	})
}

func TestMembershipSource(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	brandID := uuid.New()

	t.Run("role found", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryRow: func(sql string, args ...any) pgx.Row {
			return fakeRow{values: []any{access.RoleOwner}}
		}}
		store := brands.NewStore(db, noUsage)

		role, err := store.RoleForBrand(context.Background(), userID, brandID)
		require.NoError(t, err)
		assert.Equal(t, access.RoleOwner, role)
	})

	t.Run("no membership", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryRow: func(sql string, args ...any) pgx.Row {
			return fakeRow{err: pgx.ErrNoRows}
		}}
		store := brands.NewStore(db, noUsage)

		_, err := store.RoleForBrand(context.Background(), userID, brandID)
		assert.ErrorIs(t, err, access.ErrNoMembership)
	})

	t.Run("has any membership", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryRow: func(sql string, args ...any) pgx.Row {
			return fakeRow{values: []any{true}}
		}}
		store := brands.NewStore(db, noUsage)

		ok, err := store.HasAnyMembership(context.Background(), userID)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func int64Ptr(v int64) *int64 { return &v }
