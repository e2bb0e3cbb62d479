package access

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of membership roles. Adding a role is a
// compile-time-checked change: Resolve and Capabilities switch over
// every value and ParseRole rejects anything outside the set.
type Role string

const (
	// RoleOwner has full control over a brand.
	RoleOwner Role = "owner"
	// RoleMember has standard access to a brand.
	RoleMember Role = "member"
	// RolePlatformAdmin is the owner-equivalent role used by platform staff.
	RolePlatformAdmin Role = "platform_admin"
)

// ParseRole validates a role string against the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleMember, RolePlatformAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether the role belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleMember, RolePlatformAdmin:
		return true
	default:
		return false
	}
}

// Code is the access decision code derived from a brand's lifecycle snapshot.
type Code string

const (
	CodeAllowed                     Code = "allowed"
	CodeBlockedPendingQualification Code = "blocked_pending_qualification"
	CodeBlockedSuspended            Code = "blocked_suspended"
	CodeBlockedPendingPayment       Code = "blocked_pending_payment"
	CodeBlockedPastDueReadonly      Code = "blocked_past_due_readonly"
	CodeBlockedCancelled            Code = "blocked_cancelled"
	CodeBlockedNoActiveBrand        Code = "blocked_no_active_brand"
	CodeBlockedNoMembership         Code = "blocked_no_membership"
)

// Capabilities is the read/write capability pair attached to a decision.
// Write capability always implies read capability.
type Capabilities struct {
	CanReadBrandData  bool `json:"can_read_brand_data"`
	CanWriteBrandData bool `json:"can_write_brand_data"`
}

// Decision is the access verdict for a single request. It is derived,
// never stored, and recomputed fresh on every resolution call.
type Decision struct {
	Code         Code         `json:"code"`
	Capabilities Capabilities `json:"capabilities"`
}

// Allowed reports whether the decision grants full access.
func (d Decision) Allowed() bool {
	return d.Code == CodeAllowed
}

// capabilitiesFor maps a decision code to its capability pair.
// CodeAllowed is the only code with write access; past-due brands keep
// read access during the billing grace period; every other blocked code
// grants nothing.
func capabilitiesFor(code Code) Capabilities {
	switch code {
	case CodeAllowed:
		return Capabilities{CanReadBrandData: true, CanWriteBrandData: true}
	case CodeBlockedPastDueReadonly:
		return Capabilities{CanReadBrandData: true, CanWriteBrandData: false}
	case CodeBlockedPendingQualification, CodeBlockedSuspended, CodeBlockedPendingPayment,
		CodeBlockedCancelled, CodeBlockedNoActiveBrand, CodeBlockedNoMembership:
		return Capabilities{}
	default:
		return Capabilities{}
	}
}

// Identity is the verified caller identity supplied by the
// authentication collaborator.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Membership ties an identity to a brand with a role.
type Membership struct {
	UserID  uuid.UUID
	BrandID uuid.UUID
	Role    Role
}
