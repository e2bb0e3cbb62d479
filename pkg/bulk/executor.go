package bulk

import (
	"context"
)

// SampleSize bounds the preview sample fetch.
const SampleSize = 10

// Datastore executes the storage side of a bulk operation. Selection
// conditions compose with AND; the datastore's own row-level concurrency
// control provides any at-most-once guarantees; this layer holds no
// locks.
type Datastore[T any] interface {
	// Count returns the number of rows the selection targets.
	Count(ctx context.Context, sel Selection) (int64, error)

	// Sample fetches up to limit rows from the selection for previews.
	Sample(ctx context.Context, sel Selection, limit int) ([]T, error)

	// Mutate applies the operation to the selection and returns the
	// number of rows changed. Never called in preview mode.
	Mutate(ctx context.Context, op OperationType, sel Selection, data map[string]any) (int64, error)
}

// Result reports one bulk attempt. Preview results carry the sample and
// never a mutation count; real runs carry Mutated.
type Result[T any] struct {
	Operation     OperationType `json:"operation"`
	Preview       bool          `json:"preview"`
	AffectedCount int64         `json:"affectedCount"`
	Mutated       int64         `json:"mutated,omitempty"`
	Sample        []T           `json:"sample,omitempty"`
	SafetyLevel   SafetyLevel   `json:"safetyLevel"`
	Warnings      []string      `json:"warnings,omitempty"`
	EstimatedTime string        `json:"estimatedTime,omitempty"`
}

// Executor composes the validator with a datastore to serve bulk
// endpoints. Preview mode is re-entrant and side-effect-free: it always
// runs the count and the bounded sample fetch, never the mutation, so a
// caller can preview repeatedly until satisfied and then resubmit with
// preview=false.
type Executor[T any] struct {
	validator *Validator
	ds        Datastore[T]
}

// NewExecutor creates an executor. Panics on nil dependencies to fail
// fast during initialization.
func NewExecutor[T any](validator *Validator, ds Datastore[T]) *Executor[T] {
	if validator == nil {
		panic("bulk: Validator is required")
	}
	if ds == nil {
		panic("bulk: Datastore is required")
	}
	return &Executor[T]{validator: validator, ds: ds}
}

// Execute runs one bulk attempt end to end: selection validation, count
// resolution, the safety gate, and then either the preview fetch or the
// real mutation. Every refusal carries a machine-readable cause so the
// caller can self-correct and resubmit.
func (e *Executor[T]) Execute(ctx context.Context, op OperationType, req Request) (*Result[T], error) {
	if !op.Valid() {
		return nil, ErrUnknownOperation
	}
	if err := req.Selection.Validate(); err != nil {
		return nil, err
	}

	affected, err := e.ds.Count(ctx, req.Selection)
	if err != nil {
		return nil, err
	}

	// The gate fails even in preview when the hard ceiling is exceeded;
	// the SafetyError still reports the count so the client can show the
	// user what was refused.
	if err := e.validator.ValidateSafety(op, affected, req.Options); err != nil {
		return nil, err
	}

	level, err := e.validator.SafetyStatus(op, affected)
	if err != nil {
		return nil, err
	}

	result := &Result[T]{
		Operation:     op,
		Preview:       req.Options.Preview,
		AffectedCount: affected,
		SafetyLevel:   level,
		Warnings:      e.validator.Warnings(op, affected, e.scopeTotal(ctx, req.Selection, affected)),
		EstimatedTime: e.validator.EstimateDuration(op, affected),
	}

	if req.Options.Preview {
		sample, err := e.ds.Sample(ctx, req.Selection, SampleSize)
		if err != nil {
			return nil, err
		}
		result.Sample = sample
		return result, nil
	}

	mutated, err := e.ds.Mutate(ctx, op, req.Selection, req.Data)
	if err != nil {
		return nil, err
	}
	result.Mutated = mutated

	return result, nil
}

// scopeTotal resolves the number of rows in scope so the large-fraction
// warning can compare the selection against it. An All selection with no
// exclusions already is the total; anything else needs a second count.
// Warnings are advisory, so a failed count degrades to unknown rather
// than failing the operation.
func (e *Executor[T]) scopeTotal(ctx context.Context, sel Selection, affected int64) int64 {
	if sel.All && len(sel.ExcludeIDs) == 0 {
		return affected
	}

	total, err := e.ds.Count(ctx, Selection{All: true})
	if err != nil {
		return 0
	}
	return total
}
