package brands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/brand"
	"github.com/brandkit/brandkit/pkg/quota"
)

// DB is the subset of pgxpool.Pool the store needs; narrowed for tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store persists brands, memberships, and the lifecycle control rows.
// It implements brand.Provider, brand.SnapshotSource, and
// access.MembershipSource for the access chain.
type Store struct {
	db      DB
	counter quota.CounterFunc
}

// NewStore creates a brand store. The counter supplies live SKU usage
// for snapshots; pass the catalog store's SKUCount.
func NewStore(db DB, counter quota.CounterFunc) *Store {
	if counter == nil {
		panic("brands: quota.CounterFunc is required")
	}
	return &Store{db: db, counter: counter}
}

// GetByIdentifier implements brand.Provider. UUID identifiers hit the
// primary key; anything else is treated as a slug.
func (s *Store) GetByIdentifier(ctx context.Context, identifier string) (*brand.Brand, error) {
	const columns = `id, slug, name, logo_url, plan_id, created_at`

	var row pgx.Row
	if id, err := uuid.Parse(identifier); err == nil {
		row = s.db.QueryRow(ctx, `SELECT `+columns+` FROM brands WHERE id = $1`, id)
	} else {
		row = s.db.QueryRow(ctx, `SELECT `+columns+` FROM brands WHERE slug = $1`, identifier)
	}

	var b brand.Brand
	if err := row.Scan(&b.ID, &b.Slug, &b.Name, &b.Logo, &b.PlanID, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, brand.ErrBrandNotFound
		}
		return nil, fmt.Errorf("get brand %q: %w", identifier, err)
	}
	return &b, nil
}

// Snapshot implements brand.SnapshotSource. The control and plan rows
// are LEFT JOINed: a brand whose lifecycle rows are missing resolves to
// the safe snapshot rather than an error, so misconfiguration blocks
// access instead of granting it.
func (s *Store) Snapshot(ctx context.Context, brandID uuid.UUID) (*brand.AccessSnapshot, error) {
	row := s.db.QueryRow(ctx, `
		SELECT
			b.id,
			b.plan_id,
			c.qualification_status,
			c.operational_status,
			c.billing_status,
			p.currency,
			p.sku_limit
		FROM brands b
		LEFT JOIN brand_control c ON c.brand_id = b.id
		LEFT JOIN plans p ON p.id = b.plan_id
		WHERE b.id = $1`,
		brandID,
	)

	var (
		id            uuid.UUID
		planID        string
		qualification *string
		operational   *string
		billing       *string
		currency      *string
		skuLimit      *int64
	)
	if err := row.Scan(&id, &planID, &qualification, &operational, &billing, &currency, &skuLimit); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, brand.ErrBrandNotFound
		}
		return nil, errors.Join(brand.ErrSnapshotUnavailable, err)
	}

	snap := brand.SafeSnapshot(id)
	snap.PlanID = planID
	if qualification != nil {
		snap.QualificationStatus = brand.QualificationStatus(*qualification)
	}
	if operational != nil {
		snap.OperationalStatus = brand.OperationalStatus(*operational)
	}
	if billing != nil {
		snap.BillingStatus = brand.BillingStatus(*billing)
	}
	if currency != nil {
		snap.PlanCurrency = *currency
	}
	if skuLimit != nil {
		snap.SKULimit = *skuLimit
	}

	used, err := s.counter(ctx, id)
	if err != nil {
		return nil, errors.Join(brand.ErrSnapshotUnavailable, err)
	}
	snap.UsedSKUCount = used

	return snap, nil
}

// RoleForBrand implements access.MembershipSource.
func (s *Store) RoleForBrand(ctx context.Context, userID, brandID uuid.UUID) (access.Role, error) {
	var role access.Role
	err := s.db.QueryRow(ctx,
		`SELECT role FROM brand_members WHERE user_id = $1 AND brand_id = $2`,
		userID, brandID,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", access.ErrNoMembership
		}
		return "", fmt.Errorf("role for brand %s: %w", brandID, err)
	}
	return role, nil
}

// HasAnyMembership implements access.MembershipSource.
func (s *Store) HasAnyMembership(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM brand_members WHERE user_id = $1)`,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("memberships for user %s: %w", userID, err)
	}
	return exists, nil
}
