package paging

import (
	"fmt"
)

// Field maps a logical, caller-facing field name to a typed column
// descriptor in the datastore. Sortable surfaces register their fields
// once at startup; unknown names are rejected at the registry boundary
// rather than at query time.
type Field struct {
	// Name is the logical name callers sort by (e.g., "created_at").
	Name string
	// Column is the datastore column the name maps to.
	Column string
}

// FieldRegistry is the per-resource set of sortable fields plus the ID
// tie-breaker field. It is immutable after construction and safe for
// concurrent use.
type FieldRegistry struct {
	id     Field
	fields map[string]Field
}

// NewFieldRegistry builds a registry from the ID field and the sortable
// fields of a resource. Construction fails on empty or duplicate names
// so misconfigured resources are caught at startup.
func NewFieldRegistry(id Field, fields ...Field) (*FieldRegistry, error) {
	if id.Name == "" || id.Column == "" {
		return nil, fmt.Errorf("%w: id field requires name and column", ErrInvalidFieldRegistry)
	}

	m := make(map[string]Field, len(fields)+1)
	m[id.Name] = id

	for _, f := range fields {
		if f.Name == "" || f.Column == "" {
			return nil, fmt.Errorf("%w: field requires name and column", ErrInvalidFieldRegistry)
		}
		if _, exists := m[f.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidFieldRegistry, f.Name)
		}
		m[f.Name] = f
	}

	return &FieldRegistry{id: id, fields: m}, nil
}

// MustFieldRegistry is like NewFieldRegistry but panics on error.
// Registries are startup configuration; a bad one should prevent boot.
func MustFieldRegistry(id Field, fields ...Field) *FieldRegistry {
	r, err := NewFieldRegistry(id, fields...)
	if err != nil {
		panic(err)
	}
	return r
}

// ID returns the tie-breaker field.
func (r *FieldRegistry) ID() Field {
	return r.id
}

// Resolve maps a logical field name to its column descriptor.
// Unknown names are a client error.
func (r *FieldRegistry) Resolve(name string) (Field, error) {
	f, ok := r.fields[name]
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownSortField, name)
	}
	return f, nil
}
