package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/brandkit/brandkit/pkg/cursor"
	"github.com/brandkit/brandkit/pkg/paging"
)

// ListParams is the decoded query surface of the product list endpoint.
type ListParams struct {
	Sort   paging.Sort
	Page   paging.Page
	Filter []paging.Condition
}

// parseListParams decodes pagination, sort, and filter parameters.
// Unknown sort fields and malformed cursors are left for the engine to
// reject so the error taxonomy stays in one place.
func parseListParams(r *http.Request) ListParams {
	q := r.URL.Query()

	p := ListParams{
		Sort: paging.Sort{
			Field:     strings.TrimSpace(q.Get("sort")),
			Direction: cursor.Desc,
		},
		Page: paging.Page{
			Cursor: strings.TrimSpace(q.Get("cursor")),
		},
	}

	if p.Sort.Field == "" {
		p.Sort.Field = DefaultSortField
	}
	if order := strings.ToLower(strings.TrimSpace(q.Get("order"))); order != "" {
		p.Sort.Direction = cursor.Direction(order)
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			p.Page.Limit = limit
		}
	}

	if status := strings.TrimSpace(q.Get("status")); status != "" {
		p.Filter = append(p.Filter, paging.Condition{Column: "status", Op: paging.OpEq, Value: status})
	}
	if category := strings.TrimSpace(q.Get("category")); category != "" {
		p.Filter = append(p.Filter, paging.Condition{Column: "category", Op: paging.OpEq, Value: category})
	}
	if search := strings.TrimSpace(q.Get("q")); search != "" {
		p.Filter = append(p.Filter, paging.Condition{Column: "name", Op: paging.OpLike, Value: search})
	}

	return p
}
