package bulk

import "errors"

var (
	// ErrInvalidSelection is returned when a selection activates zero or
	// multiple strategies, or uses ExcludeIDs outside of All.
	ErrInvalidSelection = errors.New("invalid bulk selection")

	// ErrInvalidConfig is returned when safety thresholds violate
	// warning <= maxWithoutPreview <= absoluteMax.
	ErrInvalidConfig = errors.New("invalid bulk safety config")

	// ErrUnknownOperation is returned for operation types outside the
	// closed set.
	ErrUnknownOperation = errors.New("unknown bulk operation type")

	// ErrSafetyBlocked is the sentinel wrapped by every SafetyError.
	ErrSafetyBlocked = errors.New("bulk operation blocked by safety gate")
)

// SafetyReason is the machine-readable cause of a gate failure, so the
// client can self-correct (switch to preview, or resubmit confirmed).
type SafetyReason string

const (
	ReasonExceedsAbsoluteMax   SafetyReason = "exceeds_absolute_max"
	ReasonRequiresPreview      SafetyReason = "requires_preview"
	ReasonRequiresConfirmation SafetyReason = "requires_confirmation"
)

// SafetyError reports why the gate refused a bulk mutation.
type SafetyError struct {
	Operation     OperationType `json:"operation"`
	Reason        SafetyReason  `json:"reason"`
	AffectedCount int64         `json:"affectedCount"`
	Threshold     int64         `json:"threshold"`
	Message       string        `json:"message,omitempty"`
}

// Error implements the error interface.
func (e *SafetyError) Error() string {
	return string(e.Reason)
}

// Unwrap exposes the safety sentinel.
func (e *SafetyError) Unwrap() error {
	return ErrSafetyBlocked
}
