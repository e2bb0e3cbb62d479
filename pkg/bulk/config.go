package bulk

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SafetyConfig holds the per-operation-type thresholds of the safety
// gate. Configs are process-wide static policy: loaded once at startup,
// dependency-injected into each Validator, and read-only thereafter.
// Invariant: WarningThreshold <= MaxWithoutPreview <= AbsoluteMax.
type SafetyConfig struct {
	// MaxWithoutPreview is the largest affected count allowed without a
	// prior preview call.
	MaxWithoutPreview int64 `yaml:"max_without_preview"`
	// AbsoluteMax is the hard ceiling; above it the operation fails
	// unconditionally, preview or not.
	AbsoluteMax int64 `yaml:"absolute_max"`
	// WarningThreshold is where advisory warnings start.
	WarningThreshold int64 `yaml:"warning_threshold"`
	// RequireConfirmation demands the explicit confirmed flag on
	// non-preview calls.
	RequireConfirmation bool `yaml:"require_confirmation"`
	// SafetyMessage is shown to users alongside warnings.
	SafetyMessage string `yaml:"safety_message,omitempty"`
	// PerRecordCost drives the advisory duration estimate.
	PerRecordCost time.Duration `yaml:"per_record_cost,omitempty"`
}

func (c SafetyConfig) validate(op OperationType) error {
	if c.WarningThreshold <= 0 || c.MaxWithoutPreview <= 0 || c.AbsoluteMax <= 0 {
		return fmt.Errorf("%w: %s thresholds must be positive", ErrInvalidConfig, op)
	}
	if c.WarningThreshold > c.MaxWithoutPreview || c.MaxWithoutPreview > c.AbsoluteMax {
		return fmt.Errorf("%w: %s requires warning <= maxWithoutPreview <= absoluteMax", ErrInvalidConfig, op)
	}
	return nil
}

// DefaultConfigs returns the built-in safety policy. Destructive
// operations carry tighter ceilings and mandatory confirmation.
func DefaultConfigs() map[OperationType]SafetyConfig {
	return map[OperationType]SafetyConfig{
		OpUpdate: {
			WarningThreshold:  50,
			MaxWithoutPreview: 500,
			AbsoluteMax:       5000,
			PerRecordCost:     20 * time.Millisecond,
		},
		OpDelete: {
			WarningThreshold:    25,
			MaxWithoutPreview:   100,
			AbsoluteMax:         1000,
			RequireConfirmation: true,
			SafetyMessage:       "Deleted products cannot be recovered.",
			PerRecordCost:       50 * time.Millisecond,
		},
		OpArchive: {
			WarningThreshold:  50,
			MaxWithoutPreview: 500,
			AbsoluteMax:       5000,
			PerRecordCost:     15 * time.Millisecond,
		},
		OpRestore: {
			WarningThreshold:  50,
			MaxWithoutPreview: 500,
			AbsoluteMax:       5000,
			PerRecordCost:     15 * time.Millisecond,
		},
		OpStatusChange: {
			WarningThreshold:  100,
			MaxWithoutPreview: 1000,
			AbsoluteMax:       10000,
			PerRecordCost:     10 * time.Millisecond,
		},
		OpAssignment: {
			WarningThreshold:  100,
			MaxWithoutPreview: 1000,
			AbsoluteMax:       10000,
			PerRecordCost:     10 * time.Millisecond,
		},
		OpCustom: {
			WarningThreshold:    25,
			MaxWithoutPreview:   100,
			AbsoluteMax:         500,
			RequireConfirmation: true,
			PerRecordCost:       50 * time.Millisecond,
		},
	}
}

// LoadConfigs reads a safety policy from a YAML file, overlaying the
// built-in defaults: operations absent from the file keep their default
// thresholds. Every resulting config is validated; a bad policy file
// should prevent startup.
func LoadConfigs(path string) (map[OperationType]SafetyConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open safety policy: %w", err)
	}
	defer f.Close()

	return parseConfigs(f)
}

func parseConfigs(r io.Reader) (map[OperationType]SafetyConfig, error) {
	var loaded map[OperationType]SafetyConfig
	if err := yaml.NewDecoder(r).Decode(&loaded); err != nil {
		return nil, fmt.Errorf("parse safety policy: %w", err)
	}

	configs := DefaultConfigs()
	for op, cfg := range loaded {
		if !op.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
		}
		if cfg.PerRecordCost <= 0 {
			cfg.PerRecordCost = configs[op].PerRecordCost
		}
		configs[op] = cfg
	}

	for op, cfg := range configs {
		if err := cfg.validate(op); err != nil {
			return nil, err
		}
	}

	return configs, nil
}
