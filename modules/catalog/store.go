package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brandkit/brandkit/pkg/bulk"
	"github.com/brandkit/brandkit/pkg/cursor"
	"github.com/brandkit/brandkit/pkg/paging"
)

// DB is the subset of pgxpool.Pool the store needs; narrowed for tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const productColumns = `id, brand_id, sku, name, category, color, size, material, season, price_cents, currency, status, created_at, updated_at`

// writableColumns is the closed set of columns bulk update data may touch.
var writableColumns = map[string]bool{
	"name":        true,
	"category":    true,
	"color":       true,
	"size":        true,
	"material":    true,
	"season":      true,
	"price_cents": true,
	"currency":    true,
	"status":      true,
}

// filterableColumns is the closed set of columns a bulk filter
// selection may reference. Filter conditions arrive from client JSON,
// so column names are validated here before they reach SQL; brand_id
// stays out of the set because tenant scoping is never client-driven.
var filterableColumns = map[string]bool{
	"id":          true,
	"sku":         true,
	"name":        true,
	"category":    true,
	"color":       true,
	"size":        true,
	"material":    true,
	"season":      true,
	"price_cents": true,
	"currency":    true,
	"status":      true,
	"created_at":  true,
	"updated_at":  true,
}

// Store persists products in PostgreSQL. All reads and mutations are
// brand-scoped through Scope; the unscoped store only creates and
// counts.
type Store struct {
	db DB
}

// NewStore creates a product store over the given connection.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// Create inserts a product. Duplicate SKUs within a brand surface as a
// pg duplicate-key error for the handler to classify.
func (s *Store) Create(ctx context.Context, p *Product) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.BrandID, p.SKU, p.Name, p.Category, p.Color, p.Size, p.Material,
		p.Season, p.PriceCent, p.Currency, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches one product within a brand.
func (s *Store) GetByID(ctx context.Context, brandID, id uuid.UUID) (*Product, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE brand_id = $1 AND id = $2`,
		brandID, id,
	)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// SKUCount returns the number of non-archived products for a brand.
// Registered as the quota counter so the access path and the UI agree
// on the same number.
func (s *Store) SKUCount(ctx context.Context, brandID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE brand_id = $1 AND status <> 'archived'`,
		brandID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count skus for brand %s: %w", brandID, err)
	}
	return count, nil
}

// Scope returns a brand-scoped view of the store. Every query the scope
// issues carries the brand_id predicate; callers cannot reach across
// tenants through it.
func (s *Store) Scope(brandID uuid.UUID) *BrandScope {
	return &BrandScope{db: s.db, brandID: brandID}
}

// BrandScope implements paging.Datastore[Product] and
// bulk.Datastore[Product] for one brand.
type BrandScope struct {
	db      DB
	brandID uuid.UUID
}

// Select implements paging.Datastore.
func (b *BrandScope) Select(ctx context.Context, q paging.Query) ([]Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE brand_id = $1`
	args := []any{b.brandID}

	where, args := appendConditions(q.Conditions, args)
	if where != "" {
		sql += " AND " + where
	}

	if len(q.OrderBy) > 0 {
		clauses := make([]string, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			dir := "ASC"
			if o.Direction == cursor.Desc {
				dir = "DESC"
			}
			clauses = append(clauses, fmt.Sprintf("%s %s", o.Column, dir))
		}
		sql += " ORDER BY " + strings.Join(clauses, ", ")
	}

	sql += fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, q.Limit)

	rows, err := b.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products for brand %s: %w", b.brandID, err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// Count implements paging.Datastore.
func (b *BrandScope) Count(ctx context.Context, conditions []paging.Condition) (int64, error) {
	sql := `SELECT COUNT(*) FROM products WHERE brand_id = $1`
	args := []any{b.brandID}

	where, args := appendConditions(conditions, args)
	if where != "" {
		sql += " AND " + where
	}

	var count int64
	if err := b.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products for brand %s: %w", b.brandID, err)
	}
	return count, nil
}

// Bulk adapts the scope to bulk.Datastore. The adapter exists because
// paging.Datastore and bulk.Datastore both name their counting method
// Count with different selection types.
func (b *BrandScope) Bulk() bulk.Datastore[Product] {
	return bulkScope{scope: b}
}

type bulkScope struct {
	scope *BrandScope
}

func (s bulkScope) Count(ctx context.Context, sel bulk.Selection) (int64, error) {
	return s.scope.CountSelection(ctx, sel)
}

func (s bulkScope) Sample(ctx context.Context, sel bulk.Selection, limit int) ([]Product, error) {
	return s.scope.Sample(ctx, sel, limit)
}

func (s bulkScope) Mutate(ctx context.Context, op bulk.OperationType, sel bulk.Selection, data map[string]any) (int64, error) {
	return s.scope.Mutate(ctx, op, sel, data)
}

// CountSelection counts the rows a bulk selection targets.
func (b *BrandScope) CountSelection(ctx context.Context, sel bulk.Selection) (int64, error) {
	where, args, err := b.selectionWhere(sel)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := b.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count selection for brand %s: %w", b.brandID, err)
	}
	return count, nil
}

// Sample implements bulk.Datastore: a bounded fetch for previews.
func (b *BrandScope) Sample(ctx context.Context, sel bulk.Selection, limit int) ([]Product, error) {
	where, args, err := b.selectionWhere(sel)
	if err != nil {
		return nil, err
	}
	args = append(args, limit)

	sql := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY id LIMIT $%d`,
		productColumns, where, len(args))

	rows, err := b.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("sample selection for brand %s: %w", b.brandID, err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Mutate implements bulk.Datastore: the single real mutation a bulk
// request resolves to. Row-level concurrency control comes from
// PostgreSQL; this layer holds no locks.
func (b *BrandScope) Mutate(ctx context.Context, op bulk.OperationType, sel bulk.Selection, data map[string]any) (int64, error) {
	where, args, err := b.selectionWhere(sel)
	if err != nil {
		return 0, err
	}

	switch op {
	case bulk.OpDelete:
		tag, err := b.db.Exec(ctx, `DELETE FROM products WHERE `+where, args...)
		if err != nil {
			return 0, fmt.Errorf("bulk delete for brand %s: %w", b.brandID, err)
		}
		return tag.RowsAffected(), nil

	case bulk.OpArchive:
		return b.setStatus(ctx, where, args, StatusArchived)

	case bulk.OpRestore:
		return b.setStatus(ctx, where, args, StatusActive)

	case bulk.OpStatusChange:
		status, _ := data["status"].(string)
		switch ProductStatus(status) {
		case StatusDraft, StatusActive, StatusArchived:
		default:
			return 0, fmt.Errorf("%w: status %q", ErrInvalidUpdateField, status)
		}
		return b.setStatus(ctx, where, args, ProductStatus(status))

	case bulk.OpAssignment:
		category, _ := data["category"].(string)
		if category == "" {
			return 0, fmt.Errorf("%w: assignment requires category", ErrInvalidUpdateField)
		}
		return b.update(ctx, where, args, map[string]any{"category": category})

	case bulk.OpUpdate:
		return b.update(ctx, where, args, data)

	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOperation, op)
	}
}

func (b *BrandScope) setStatus(ctx context.Context, where string, args []any, status ProductStatus) (int64, error) {
	sql := fmt.Sprintf(`UPDATE products SET status = $%d, updated_at = now() WHERE %s`, len(args)+1, where)
	args = append(args, status)

	tag, err := b.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk status change for brand %s: %w", b.brandID, err)
	}
	return tag.RowsAffected(), nil
}

func (b *BrandScope) update(ctx context.Context, where string, args []any, data map[string]any) (int64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty update data", ErrInvalidUpdateField)
	}

	sets := make([]string, 0, len(data)+1)
	for col, val := range data {
		if !writableColumns[col] {
			return 0, fmt.Errorf("%w: %q", ErrInvalidUpdateField, col)
		}
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	sets = append(sets, "updated_at = now()")

	sql := fmt.Sprintf(`UPDATE products SET %s WHERE %s`, strings.Join(sets, ", "), where)

	tag, err := b.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk update for brand %s: %w", b.brandID, err)
	}
	return tag.RowsAffected(), nil
}

// selectionWhere translates a validated bulk selection into a WHERE
// clause. The brand_id predicate is always present: bulk "all" means
// all rows in the brand's scope, never the whole table. Filter columns
// and operators come from the client and are checked against closed
// sets before any SQL is rendered.
func (b *BrandScope) selectionWhere(sel bulk.Selection) (string, []any, error) {
	clauses := []string{"brand_id = $1"}
	args := []any{b.brandID}

	switch {
	case len(sel.IDs) > 0:
		args = append(args, sel.IDs)
		clauses = append(clauses, fmt.Sprintf("id = ANY($%d::uuid[])", len(args)))

	case sel.All:
		if len(sel.ExcludeIDs) > 0 {
			args = append(args, sel.ExcludeIDs)
			clauses = append(clauses, fmt.Sprintf("NOT (id = ANY($%d::uuid[]))", len(args)))
		}

	case len(sel.Filter) > 0:
		for _, c := range sel.Filter {
			if !filterableColumns[c.Column] {
				return "", nil, fmt.Errorf("%w: column %q", ErrInvalidFilterField, c.Column)
			}
			if !knownFilterOp(c.Op) {
				return "", nil, fmt.Errorf("%w: operator %q", ErrInvalidFilterField, c.Op)
			}
		}
		where, newArgs := appendConditions(sel.Filter, args)
		args = newArgs
		if where != "" {
			clauses = append(clauses, where)
		}
	}

	return strings.Join(clauses, " AND "), args, nil
}

func knownFilterOp(op paging.Op) bool {
	switch op {
	case paging.OpEq, paging.OpNeq, paging.OpLt, paging.OpLte,
		paging.OpGt, paging.OpGte, paging.OpIn, paging.OpNot, paging.OpLike:
		return true
	default:
		return false
	}
}

// appendConditions renders AND-composed conditions into SQL, extending
// args. Column names must already be validated against a closed set:
// the paging path resolves them through the field registry and the bulk
// path checks them in selectionWhere. Cursor-derived values arrive in
// wire (text) form; columns with non-text types get an explicit cast so
// the comparison is typed.
func appendConditions(conditions []paging.Condition, args []any) (string, []any) {
	if len(conditions) == 0 {
		return "", args
	}

	clauses := make([]string, 0, len(conditions))
	for _, c := range conditions {
		switch c.Op {
		case paging.OpIn:
			args = append(args, c.Value)
			clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", c.Column, len(args)))
		case paging.OpNot:
			args = append(args, c.Value)
			clauses = append(clauses, fmt.Sprintf("NOT (%s = ANY($%d))", c.Column, len(args)))
		case paging.OpLike:
			args = append(args, "%"+fmt.Sprint(c.Value)+"%")
			clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", c.Column, len(args)))
		default:
			args = append(args, c.Value)
			clauses = append(clauses, fmt.Sprintf("%s %s $%d%s", c.Column, sqlOp(c.Op), len(args), castFor(c.Column)))
		}
	}

	return strings.Join(clauses, " AND "), args
}

func sqlOp(op paging.Op) string {
	switch op {
	case paging.OpEq:
		return "="
	case paging.OpNeq:
		return "<>"
	case paging.OpLt:
		return "<"
	case paging.OpLte:
		return "<="
	case paging.OpGt:
		return ">"
	case paging.OpGte:
		return ">="
	default:
		return "="
	}
}

func castFor(column string) string {
	switch column {
	case "id":
		return "::uuid"
	case "price_cents":
		return "::bigint"
	case "created_at", "updated_at":
		return "::timestamptz"
	default:
		return ""
	}
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.BrandID, &p.SKU, &p.Name, &p.Category, &p.Color,
		&p.Size, &p.Material, &p.Season, &p.PriceCent, &p.Currency, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
