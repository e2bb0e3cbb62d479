package bulk

import (
	"github.com/brandkit/brandkit/pkg/paging"
)

// OperationType classifies a bulk mutation for safety-policy purposes.
type OperationType string

const (
	OpUpdate       OperationType = "update"
	OpDelete       OperationType = "delete"
	OpArchive      OperationType = "archive"
	OpRestore      OperationType = "restore"
	OpStatusChange OperationType = "status_change"
	OpAssignment   OperationType = "assignment"
	OpCustom       OperationType = "custom"
)

// Valid reports whether the operation type is known.
func (o OperationType) Valid() bool {
	switch o {
	case OpUpdate, OpDelete, OpArchive, OpRestore, OpStatusChange, OpAssignment, OpCustom:
		return true
	default:
		return false
	}
}

// SafetyLevel buckets an affected-row count against the operation's
// thresholds.
type SafetyLevel string

const (
	LevelSafe      SafetyLevel = "safe"      // <= warning threshold
	LevelWarning   SafetyLevel = "warning"   // <= max without preview
	LevelDangerous SafetyLevel = "dangerous" // <= absolute max
	LevelBlocked   SafetyLevel = "blocked"   // > absolute max
)

// Selection identifies the rows a bulk operation targets. Exactly one
// strategy is active: an explicit ID set, all rows in scope with an
// optional denylist, or a filter predicate set.
type Selection struct {
	IDs []string `json:"ids,omitempty"`
	All bool     `json:"all,omitempty"`
	// ExcludeIDs only has meaning under All.
	ExcludeIDs []string           `json:"excludeIds,omitempty"`
	Filter     []paging.Condition `json:"filter,omitempty"`
}

// Validate checks that exactly one selection strategy is active and
// that ExcludeIDs is only used under All. Malformed selections are a
// client error.
func (s Selection) Validate() error {
	active := 0
	if len(s.IDs) > 0 {
		active++
	}
	if s.All {
		active++
	}
	if len(s.Filter) > 0 {
		active++
	}

	if active != 1 {
		return ErrInvalidSelection
	}
	if len(s.ExcludeIDs) > 0 && !s.All {
		return ErrInvalidSelection
	}
	return nil
}

// Options carries the caller's safety flags for a bulk request.
type Options struct {
	// Preview executes the count and sample fetch but never the mutation.
	Preview bool `json:"preview,omitempty"`
	// Confirmed is the explicit confirmation flag demanded by
	// operations configured with RequireConfirmation.
	Confirmed bool `json:"confirmed,omitempty"`
	// SkipSafetyChecks bypasses the gate entirely. Reserved for
	// privileged callers; the caller layer must audit its use.
	SkipSafetyChecks bool `json:"skipSafetyChecks,omitempty"`
}

// Request is the wire shape of a bulk operation.
type Request struct {
	Selection Selection      `json:"selection"`
	Data      map[string]any `json:"data,omitempty"`
	Options   Options        `json:"options"`
}
