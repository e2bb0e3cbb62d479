package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/brandkit/brandkit/pkg/blob"
	"github.com/brandkit/brandkit/pkg/cursor"
	"github.com/brandkit/brandkit/pkg/paging"
)

// exportBatchSize bounds each batch fetch while streaming a brand's
// catalog into a CSV artifact.
const exportBatchSize = 500

// ExportResult describes one finished export artifact.
type ExportResult struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	RowCount int    `json:"row_count"`
}

// Exporter writes a brand's full catalog to CSV and stores the artifact.
// Rows stream in keyset batches ordered by id, so memory stays bounded
// regardless of catalog size.
type Exporter struct {
	store   *Store
	storage blob.Storage
	log     *slog.Logger
}

// NewExporter creates a CSV exporter. Panics on nil dependencies to
// fail fast during initialization.
func NewExporter(store *Store, storage blob.Storage, log *slog.Logger) *Exporter {
	if store == nil {
		panic("catalog: Store is required")
	}
	if storage == nil {
		panic("catalog: blob.Storage is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{store: store, storage: storage, log: log}
}

// ExportKey is the deterministic artifact key for an export task, so
// clients can poll the URL the enqueue response announced.
func ExportKey(brandID, taskID uuid.UUID) string {
	return fmt.Sprintf("exports/%s/%s.csv", brandID, taskID)
}

// Export streams the brand's catalog into a CSV artifact under the
// task's deterministic key and returns the artifact URL.
func (e *Exporter) Export(ctx context.Context, brandID, taskID uuid.UUID) (*ExportResult, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvColumns); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	scope := e.store.Scope(brandID)
	rows := 0
	lastID := ""

	for {
		q := paging.Query{
			OrderBy: []paging.OrderBy{{Column: "id", Direction: cursor.Asc}},
			Limit:   exportBatchSize,
		}
		if lastID != "" {
			q.Conditions = []paging.Condition{{Column: "id", Op: paging.OpGt, Value: lastID}}
		}

		batch, err := scope.Select(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
		if len(batch) == 0 {
			break
		}

		for _, p := range batch {
			record := []string{
				p.SKU, p.Name, p.Category, p.Color, p.Size, p.Material, p.Season,
				strconv.FormatInt(p.PriceCent, 10), p.Currency, string(p.Status),
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
			}
			rows++
		}

		lastID = batch[len(batch)-1].PagingID()
		if len(batch) < exportBatchSize {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	key := ExportKey(brandID, taskID)
	url, err := e.storage.Upload(ctx, key, "text/csv", &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	e.log.InfoContext(ctx, "catalog export finished",
		slog.String("brand_id", brandID.String()),
		slog.String("task_id", taskID.String()),
		slog.Int("rows", rows))

	return &ExportResult{Key: key, URL: url, RowCount: rows}, nil
}
