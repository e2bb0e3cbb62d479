package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brandkit/brandkit/pkg/access"
	"github.com/brandkit/brandkit/pkg/brand"
	"github.com/brandkit/brandkit/pkg/bulk"
	"github.com/brandkit/brandkit/pkg/cursor"
	"github.com/brandkit/brandkit/pkg/paging"
	"github.com/brandkit/brandkit/pkg/quota"
)

// listEnvelope is the paginated response shape shared by all catalog
// list endpoints.
type listEnvelope[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
	Total      *int64 `json:"total,omitempty"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writePage[T paging.Row](w http.ResponseWriter, result *paging.Result[T]) {
	items := result.Items
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, listEnvelope[T]{
		Items:      items,
		NextCursor: result.NextCursor,
		HasMore:    result.HasMore,
		Total:      result.Total,
	})
}

// writeError maps domain errors onto the module's HTTP taxonomy. Safety
// refusals keep their machine-readable payload so bulk clients can
// self-correct and resubmit.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var safety *bulk.SafetyError
	if errors.As(err, &safety) {
		writeJSON(w, http.StatusPreconditionFailed, errorBody{
			Error:   "bulk_operation_blocked",
			Message: safety.Message,
			Details: safety,
		})
		return
	}

	var blocked *access.BlockedError
	if errors.As(err, &blocked) {
		access.DefaultErrorHandler(w, r, err)
		return
	}

	var limit *quota.LimitError
	if errors.As(err, &limit) {
		writeJSON(w, http.StatusForbidden, errorBody{
			Error:   "sku_limit_exceeded",
			Details: limit.Access,
		})
		return
	}

	switch {
	case errors.Is(err, cursor.ErrInvalidCursor),
		errors.Is(err, paging.ErrCursorMismatch),
		errors.Is(err, paging.ErrUnknownSortField),
		errors.Is(err, paging.ErrInvalidSortDirection),
		errors.Is(err, bulk.ErrInvalidSelection),
		errors.Is(err, bulk.ErrUnknownOperation),
		errors.Is(err, ErrInvalidUpdateField),
		errors.Is(err, ErrInvalidFilterField),
		errors.Is(err, ErrInvalidProduct),
		errors.Is(err, ErrImportFailed):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: err.Error()})

	case errors.Is(err, ErrProductNotFound), errors.Is(err, brand.ErrBrandNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Message: err.Error()})

	case errors.Is(err, ErrDuplicateSKU):
		writeJSON(w, http.StatusConflict, errorBody{Error: "duplicate_sku", Message: err.Error()})

	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal_error"})
	}
}
