package bulk

import (
	"fmt"
	"math"
	"time"
)

// Validator is the bulk-safety gate for one resource. All state is the
// injected config; every evaluation is fresh, per call, and
// side-effect-free, so validators are safe for concurrent use.
type Validator struct {
	configs map[OperationType]SafetyConfig
}

// NewValidator creates a validator over an explicit safety policy.
// There is no ambient global policy: callers inject the configs at
// construction. Configs are validated here so a misconfigured policy
// fails at startup, not at the first bulk call.
func NewValidator(configs map[OperationType]SafetyConfig) (*Validator, error) {
	if len(configs) == 0 {
		configs = DefaultConfigs()
	}
	for op, cfg := range configs {
		if !op.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
		}
		if err := cfg.validate(op); err != nil {
			return nil, err
		}
	}
	return &Validator{configs: configs}, nil
}

// Config returns the safety config for an operation type.
func (v *Validator) Config(op OperationType) (SafetyConfig, error) {
	cfg, ok := v.configs[op]
	if !ok {
		return SafetyConfig{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	return cfg, nil
}

// SafetyStatus buckets an affected count against the operation's thresholds.
func (v *Validator) SafetyStatus(op OperationType, affected int64) (SafetyLevel, error) {
	cfg, err := v.Config(op)
	if err != nil {
		return "", err
	}

	switch {
	case affected <= cfg.WarningThreshold:
		return LevelSafe, nil
	case affected <= cfg.MaxWithoutPreview:
		return LevelWarning, nil
	case affected <= cfg.AbsoluteMax:
		return LevelDangerous, nil
	default:
		return LevelBlocked, nil
	}
}

// ValidateSafety runs the gate for one operation attempt. Success is the
// absence of a failure. Checks run in strict order:
//
//  1. affected > absoluteMax fails unconditionally, even in preview.
//     Previews still report the count, but nothing may mutate past the
//     hard ceiling.
//  2. affected > maxWithoutPreview on a non-preview call fails,
//     instructing the caller to preview first.
//  3. requireConfirmation without the confirmed flag fails on
//     non-preview calls.
//
// opts.SkipSafetyChecks bypasses all three. That is a deliberate admin
// override; the caller layer must log and audit it, the validator does
// not.
func (v *Validator) ValidateSafety(op OperationType, affected int64, opts Options) error {
	cfg, err := v.Config(op)
	if err != nil {
		return err
	}

	if opts.SkipSafetyChecks {
		return nil
	}

	if affected > cfg.AbsoluteMax {
		return &SafetyError{
			Operation:     op,
			Reason:        ReasonExceedsAbsoluteMax,
			AffectedCount: affected,
			Threshold:     cfg.AbsoluteMax,
			Message:       cfg.SafetyMessage,
		}
	}

	if affected > cfg.MaxWithoutPreview && !opts.Preview {
		return &SafetyError{
			Operation:     op,
			Reason:        ReasonRequiresPreview,
			AffectedCount: affected,
			Threshold:     cfg.MaxWithoutPreview,
			Message:       cfg.SafetyMessage,
		}
	}

	if cfg.RequireConfirmation && !opts.Confirmed && !opts.Preview {
		return &SafetyError{
			Operation:     op,
			Reason:        ReasonRequiresConfirmation,
			AffectedCount: affected,
			Threshold:     cfg.MaxWithoutPreview,
			Message:       cfg.SafetyMessage,
		}
	}

	return nil
}

// Warnings produces the advisory, human-readable notices for an
// operation. They never gate execution. total is the number of rows in
// scope (pass 0 when unknown); it drives the large-fraction notice.
func (v *Validator) Warnings(op OperationType, affected, total int64) []string {
	cfg, ok := v.configs[op]
	if !ok {
		return nil
	}

	var warnings []string

	if affected > cfg.WarningThreshold {
		warnings = append(warnings, fmt.Sprintf("This operation affects %d records.", affected))
	}

	if total > 0 && affected*2 >= total {
		warnings = append(warnings, fmt.Sprintf("This operation affects %d of %d records in scope.", affected, total))
	}

	switch op {
	case OpDelete:
		warnings = append(warnings, "Delete is a destructive operation.")
		warnings = append(warnings, "Deleted records cannot be restored.")
	case OpCustom:
		warnings = append(warnings, "Custom operations may not be reversible.")
	}

	if cfg.SafetyMessage != "" {
		warnings = append(warnings, cfg.SafetyMessage)
	}

	return warnings
}

// EstimateDuration multiplies the operation's per-record cost by the
// affected count and buckets the result into a human string. Advisory
// only; it never gates execution.
func (v *Validator) EstimateDuration(op OperationType, affected int64) string {
	cfg, ok := v.configs[op]
	if !ok || affected <= 0 {
		return "less than a second"
	}

	total := time.Duration(affected) * cfg.PerRecordCost
	switch {
	case total < time.Second:
		return "less than a second"
	case total < time.Minute:
		secs := int(math.Round(total.Seconds()))
		return fmt.Sprintf("about %d seconds", secs)
	default:
		mins := int(math.Round(total.Minutes()))
		if mins == 1 {
			return "about 1 minute"
		}
		return fmt.Sprintf("about %d minutes", mins)
	}
}
