package brands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/brand"
	"github.com/brandkit/brandkit/pkg/pg"
	"github.com/brandkit/brandkit/pkg/slug"
)

// Service provisions brands and maintains their lifecycle rows.
type Service struct {
	db  DB
	log *slog.Logger
}

// NewService creates the brand provisioning service.
func NewService(db DB, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{db: db, log: log}
}

// CreateBrand provisions a brand with its control row and makes the
// creator its owner. The slug derives from the name; on collision it
// retries once with a random suffix.
func (s *Service) CreateBrand(ctx context.Context, ownerID uuid.UUID, name, planID string) (*brand.Brand, error) {
	b := &brand.Brand{
		ID:        uuid.New(),
		Slug:      slug.Make(name),
		Name:      name,
		PlanID:    planID,
		CreatedAt: time.Now().UTC(),
	}

	err := s.insertBrand(ctx, b)
	if pg.IsDuplicateKeyError(err) {
		b.Slug = slug.Make(name, slug.WithSuffix(6))
		err = s.insertBrand(ctx, b)
	}
	if err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO brand_control (brand_id, qualification_status, operational_status, billing_status, updated_at)
		VALUES ($1, $2, $3, $4, now())`,
		b.ID, brand.QualificationUnqualified, brand.OperationalActive, brand.BillingUnconfigured,
	)
	if err != nil {
		return nil, fmt.Errorf("create brand control row: %w", err)
	}

	if err := s.AddMember(ctx, b.ID, ownerID, access.RoleOwner); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "brand created",
		slog.String("brand_id", b.ID.String()),
		slog.String("slug", b.Slug))

	return b, nil
}

func (s *Service) insertBrand(ctx context.Context, b *brand.Brand) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO brands (id, slug, name, logo_url, plan_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.Slug, b.Name, b.Logo, b.PlanID, b.CreatedAt,
	)
	return err
}

// AddMember grants a user a role in a brand. Re-adding an existing
// member updates the role.
func (s *Service) AddMember(ctx context.Context, brandID, userID uuid.UUID, role access.Role) error {
	if !role.Valid() {
		return access.ErrUnknownRole
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO brand_members (user_id, brand_id, role, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, brand_id) DO UPDATE SET role = EXCLUDED.role`,
		userID, brandID, role,
	)
	if err != nil {
		return fmt.Errorf("add member to brand %s: %w", brandID, err)
	}
	return nil
}

// RemoveMember revokes a user's membership in a brand.
func (s *Service) RemoveMember(ctx context.Context, brandID, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM brand_members WHERE user_id = $1 AND brand_id = $2`,
		userID, brandID,
	)
	if err != nil {
		return fmt.Errorf("remove member from brand %s: %w", brandID, err)
	}
	return nil
}

// SetQualification records the outcome of onboarding qualification.
func (s *Service) SetQualification(ctx context.Context, brandID uuid.UUID, status brand.QualificationStatus) error {
	return s.setControl(ctx, brandID, "qualification_status", string(status))
}

// SetOperationalStatus records moderation state changes (suspensions
// and reinstatements).
func (s *Service) SetOperationalStatus(ctx context.Context, brandID uuid.UUID, status brand.OperationalStatus) error {
	return s.setControl(ctx, brandID, "operational_status", string(status))
}

// SetBillingStatus records billing lifecycle transitions, normally
// driven by payment provider webhooks.
func (s *Service) SetBillingStatus(ctx context.Context, brandID uuid.UUID, status brand.BillingStatus) error {
	return s.setControl(ctx, brandID, "billing_status", string(status))
}

func (s *Service) setControl(ctx context.Context, brandID uuid.UUID, column, value string) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`
		INSERT INTO brand_control (brand_id, %[1]s, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (brand_id) DO UPDATE SET %[1]s = EXCLUDED.%[1]s, updated_at = now()`, column),
		brandID, value,
	)
	if err != nil {
		return fmt.Errorf("set %s for brand %s: %w", column, brandID, err)
	}

	s.log.InfoContext(ctx, "brand control updated",
		slog.String("brand_id", brandID.String()),
		slog.String(column, value))

	return nil
}
