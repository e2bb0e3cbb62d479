package access

import (
	"github.com/google/uuid"

	"github.com/brandkit/brandkit/pkg/brand"
)

// Resolve evaluates a role and a brand lifecycle snapshot into an access
// decision. It is a pure function: no I/O, no side effects, and safe to
// call from concurrent requests. Callers are responsible for raising the
// user-facing error keyed off the decision code.
//
// Rules are priority-ordered, first match wins. A nil snapshot means the
// brand's control rows are missing; it is replaced with the safe default
// (unqualified, unconfigured billing), so missing configuration resolves
// to blocked_pending_qualification rather than open access.
func Resolve(role Role, snap *brand.AccessSnapshot) Decision {
	if !role.Valid() {
		return decisionFor(CodeBlockedNoMembership)
	}

	if snap == nil {
		snap = brand.SafeSnapshot(uuid.Nil)
	}

	switch {
	case snap.QualificationStatus != brand.QualificationQualified:
		return decisionFor(CodeBlockedPendingQualification)
	case snap.OperationalStatus == brand.OperationalSuspended:
		return decisionFor(CodeBlockedSuspended)
	case snap.BillingStatus == brand.BillingCancelled:
		return decisionFor(CodeBlockedCancelled)
	case snap.BillingStatus == brand.BillingPendingPayment:
		return decisionFor(CodeBlockedPendingPayment)
	case snap.BillingStatus == brand.BillingPastDue:
		// Billing grace period: reads stay open, writes are denied until
		// the billing collaborator reports payment or cancels the brand.
		return decisionFor(CodeBlockedPastDueReadonly)
	default:
		return decisionFor(CodeAllowed)
	}
}

// NoMembership returns the decision for callers with no resolvable
// membership in any brand.
func NoMembership() Decision {
	return decisionFor(CodeBlockedNoMembership)
}

// NoActiveBrand returns the decision for callers with memberships
// elsewhere but no brand selected for this request.
func NoActiveBrand() Decision {
	return decisionFor(CodeBlockedNoActiveBrand)
}

func decisionFor(code Code) Decision {
	return Decision{Code: code, Capabilities: capabilitiesFor(code)}
}
