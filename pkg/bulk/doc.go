// Package bulk bounds the blast radius of multi-row mutations with a
// threshold/preview/confirmation safety gate.
//
// Every operation type (update, delete, archive, restore, status_change,
// assignment, custom) carries a SafetyConfig with three ordered
// thresholds: warning <= maxWithoutPreview <= absoluteMax. The policy is
// process-wide static configuration, loaded once at startup from YAML
// or the built-in defaults and injected into each Validator; there is no
// ambient global state.
//
// ValidateSafety evaluates fresh per call, in strict order: the hard
// ceiling fails unconditionally (even previews), then large non-preview
// calls are told to preview first, then confirmation-requiring
// operations demand the explicit confirmed flag. Each refusal carries a
// machine-readable SafetyError so the client can self-correct; mutations
// are never silently retried by this layer.
//
// Preview mode always runs the count and a sample fetch bounded to ten
// rows and never the mutation, making the gate re-entrant and
// side-effect-free until the real call arrives with preview=false.
//
// Warnings and EstimateDuration are advisory text for the confirmation
// UI; neither gates execution. SkipSafetyChecks bypasses the gate for
// privileged callers; the caller layer is responsible for auditing it.
package bulk
