package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/brand"
	"github.com/brandkit/brandkit/pkg/bulk"
	"github.com/brandkit/brandkit/pkg/paging"
	"github.com/brandkit/brandkit/pkg/pg"
	"github.com/brandkit/brandkit/pkg/quota"
)

// Handler serves the product catalog endpoints of one brand scope. All
// routes assume the access middleware chain resolved a brand and a
// decision upstream; handlers read both from the request context.
type Handler struct {
	store     *Store
	validator *bulk.Validator
	usage     *quota.Service
	importer  *Importer
	tasks     TaskEnqueuer
	pagingCfg paging.Config
	log       *slog.Logger
}

// NewHandler wires the catalog handler. Panics on nil store or validator
// to fail fast during initialization; tasks may be nil, which disables
// the export endpoint.
func NewHandler(store *Store, validator *bulk.Validator, tasks TaskEnqueuer, log *slog.Logger, opts ...HandlerOption) *Handler {
	if store == nil {
		panic("catalog: Store is required")
	}
	if validator == nil {
		panic("catalog: bulk.Validator is required")
	}
	if log == nil {
		log = slog.Default()
	}

	h := &Handler{
		store:     store,
		validator: validator,
		usage:     quota.NewService(store.SKUCount),
		tasks:     tasks,
		pagingCfg: paging.DefaultConfig,
		log:       log,
	}
	h.importer = NewImporter(store, log)

	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandlerOption configures the handler.
type HandlerOption func(*Handler)

// WithPagingConfig overrides the list endpoint's page size bounds.
func WithPagingConfig(cfg paging.Config) HandlerOption {
	return func(h *Handler) {
		h.pagingCfg = cfg
	}
}

// List serves GET /products with keyset pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	b := brand.MustFromContext(r.Context())
	params := parseListParams(r)

	engine, err := paging.NewEngine[Product](ProductFields, h.store.Scope(b.ID), h.pagingCfg)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := engine.List(r.Context(), params.Filter, params.Sort, params.Page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePage(w, result)
}

// Get serves GET /products/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	b := brand.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, ErrProductNotFound)
		return
	}

	p, err := h.store.GetByID(r.Context(), b.ID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

type createProductRequest struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Color      string `json:"color"`
	Size       string `json:"size"`
	Material   string `json:"material"`
	Season     string `json:"season"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
}

// Create serves POST /products. The quota gate runs as middleware; by
// the time this handler executes the plan has capacity for one SKU.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	b := brand.MustFromContext(r.Context())

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", ErrInvalidProduct, err))
		return
	}

	now := time.Now().UTC()
	p := &Product{
		ID:        uuid.New(),
		BrandID:   b.ID,
		SKU:       req.SKU,
		Name:      req.Name,
		Category:  req.Category,
		Color:     req.Color,
		Size:      req.Size,
		Material:  req.Material,
		Season:    req.Season,
		PriceCent: req.PriceCents,
		Currency:  req.Currency,
		Status:    ProductStatus(req.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}

	if err := p.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.store.Create(r.Context(), p); err != nil {
		if pg.IsDuplicateKeyError(err) {
			writeError(w, r, fmt.Errorf("%w: %s", ErrDuplicateSKU, p.SKU))
			return
		}
		writeError(w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "product created",
		slog.String("brand_id", b.ID.String()),
		slog.String("product_id", p.ID.String()),
		slog.String("sku", p.SKU))

	writeJSON(w, http.StatusCreated, p)
}

// Bulk serves POST /products/bulk/{operation}: one request body carrying
// a selection, optional operation data, and the safety options.
func (h *Handler) Bulk(w http.ResponseWriter, r *http.Request) {
	b := brand.MustFromContext(r.Context())
	op := bulk.OperationType(chi.URLParam(r, "operation"))

	var req bulk.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", bulk.ErrInvalidSelection, err))
		return
	}

	executor := bulk.NewExecutor(h.validator, h.store.Scope(b.ID).Bulk())
	result, err := executor.Execute(r.Context(), op, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !result.Preview {
		h.log.InfoContext(r.Context(), "bulk operation executed",
			slog.String("brand_id", b.ID.String()),
			slog.String("operation", string(op)),
			slog.Int64("mutated", result.Mutated))
	}

	writeJSON(w, http.StatusOK, result)
}

// maxImportBytes caps uploaded CSV files at 20 MiB.
const maxImportBytes = 20 << 20

// Import serves POST /products/import with a CSV payload, either as the
// multipart field "file" or as a raw text/csv body. The whole batch is
// gated on the plan's SKU quota using the count of valid rows.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	b := brand.MustFromContext(r.Context())
	resolved, ok := access.ResolvedFromContext(r.Context())
	if !ok {
		writeError(w, r, access.ErrNoDecisionInContext)
		return
	}

	src := http.MaxBytesReader(w, r.Body, maxImportBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", ErrImportFailed, err))
			return
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: missing file field", ErrImportFailed))
			return
		}
		defer f.Close()
		src = f
	}

	report, err := h.importer.Import(r.Context(), b.ID, resolved, src)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Export serves POST /products/export: it enqueues a background export
// and answers immediately with the task id and the artifact key the
// finished file will appear under.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if h.tasks == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "exports_disabled"})
		return
	}

	b := brand.MustFromContext(r.Context())
	task := ExportTask{TaskID: uuid.New(), BrandID: b.ID}
	if identity, ok := access.IdentityFromContext(r.Context()); ok {
		task.RequestedBy = identity.UserID.String()
	}

	if err := h.tasks.Enqueue(r.Context(), task); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", ErrExportFailed, err))
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"task_id": task.TaskID,
		"key":     ExportKey(b.ID, task.TaskID),
	})
}

// Usage serves GET /products/usage: current SKU usage against the plan
// ceiling, with the same rounding the dashboard renders.
func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	resolved, ok := access.ResolvedFromContext(r.Context())
	if !ok {
		writeError(w, r, access.ErrNoDecisionInContext)
		return
	}

	used, limit, err := h.usage.Usage(r.Context(), resolved.Snapshot)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"used":       used,
		"limit":      limit,
		"percentage": quota.UsagePercentage(used, limit),
	})
}
