package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/pg"
	"github.com/brandkit/brandkit/pkg/quota"
)

// csvColumns is the canonical import header. Extra columns are ignored;
// missing required columns fail the whole file.
var csvColumns = []string{"sku", "name", "category", "color", "size", "material", "season", "price_cents", "currency", "status"}

// RowError describes one rejected CSV row.
type RowError struct {
	Row     int    `json:"row"`
	SKU     string `json:"sku,omitempty"`
	Message string `json:"message"`
}

// ImportReport summarizes one CSV import run. Row numbering is
// 1-based and counts the header, matching what a spreadsheet shows.
type ImportReport struct {
	TotalRows int        `json:"total_rows"`
	Imported  int        `json:"imported"`
	Skipped   int        `json:"skipped"`
	Errors    []RowError `json:"errors,omitempty"`
}

// parsedRow pairs a valid product with its 1-based source row so
// insert-time rejects report the row the same way parse-time rejects do.
type parsedRow struct {
	*Product
	Row int
}

// Importer parses and loads product CSV files. Invalid rows are skipped
// and reported; they never abort the rest of the file.
type Importer struct {
	store *Store
	log   *slog.Logger
}

// NewImporter creates a CSV importer over the product store.
func NewImporter(store *Store, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{store: store, log: log}
}

// Import reads the CSV stream, validates every row, gates the batch on
// the plan's SKU quota, and inserts the valid rows. The quota check uses
// the count of valid rows, not the raw row count, so a file full of
// rejects does not consume headroom it never uses.
func (im *Importer) Import(ctx context.Context, brandID uuid.UUID, resolved *access.Resolved, src io.Reader) (*ImportReport, error) {
	products, report, err := im.parse(brandID, src)
	if err != nil {
		return nil, err
	}

	if resolved != nil {
		a := quota.ResolveSKUAccess(resolved.Decision, resolved.Snapshot, int64(len(products)))
		if a.Blocked() {
			return nil, &quota.LimitError{Access: a, Intended: int64(len(products))}
		}
	}

	for _, p := range products {
		if err := im.store.Create(ctx, p.Product); err != nil {
			if pg.IsDuplicateKeyError(err) {
				report.Imported--
				report.Skipped++
				report.Errors = append(report.Errors, RowError{Row: p.Row, SKU: p.SKU, Message: "sku already exists"})
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrImportFailed, err)
		}
	}

	im.log.InfoContext(ctx, "csv import finished",
		slog.String("brand_id", brandID.String()),
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped))

	return report, nil
}

// parse validates the stream row by row. Three reject classes mirror
// what real merchant files get wrong: missing required fields, field
// length violations, and duplicate SKUs within the same file.
func (im *Importer) parse(brandID uuid.UUID, src io.Reader) ([]parsedRow, *ImportReport, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	// Merchant exports often have ragged optional columns.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unreadable header: %v", ErrImportFailed, err)
	}

	index := map[string]int{}
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"sku", "name"} {
		if _, ok := index[required]; !ok {
			return nil, nil, fmt.Errorf("%w: missing required column %q", ErrImportFailed, required)
		}
	}

	report := &ImportReport{}
	seen := map[string]int{}
	var products []parsedRow

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.TotalRows++
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Row: row, Message: "malformed csv row"})
			continue
		}
		report.TotalRows++

		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		now := time.Now().UTC()
		p := &Product{
			ID:        uuid.New(),
			BrandID:   brandID,
			SKU:       cell("sku"),
			Name:      cell("name"),
			Category:  cell("category"),
			Color:     cell("color"),
			Size:      cell("size"),
			Material:  cell("material"),
			Season:    cell("season"),
			Currency:  cell("currency"),
			Status:    ProductStatus(cell("status")),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if raw := cell("price_cents"); raw != "" {
			price, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				report.Skipped++
				report.Errors = append(report.Errors, RowError{Row: row, SKU: p.SKU, Message: "price_cents is not an integer"})
				continue
			}
			p.PriceCent = price
		}
		if p.Currency == "" {
			p.Currency = "USD"
		}
		if p.Status == "" {
			p.Status = StatusDraft
		}

		if err := p.Validate(); err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Row: row, SKU: p.SKU, Message: err.Error()})
			continue
		}

		if first, dup := seen[p.SKU]; dup {
			report.Skipped++
			report.Errors = append(report.Errors, RowError{
				Row: row, SKU: p.SKU,
				Message: fmt.Sprintf("duplicate sku within file, first seen at row %d", first),
			})
			continue
		}
		seen[p.SKU] = row

		products = append(products, parsedRow{Product: p, Row: row})
		report.Imported++
	}

	return products, report, nil
}
