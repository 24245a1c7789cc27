// Package rbac provides the role and capability model for the closure portal.
// Every core operation consults HasCapability instead of comparing role
// strings ad hoc; unknown roles hold no capabilities.
package rbac

// Role is the closed set of portal actor roles.
type Role string

const (
	RoleRailwayOperator Role = "railway_operator"
	RoleAdministration  Role = "administration"
	RoleTrafficPolice   Role = "traffic_police"
)

// DisplayName returns the human-readable role label.
func (r Role) DisplayName() string {
	switch r {
	case RoleRailwayOperator:
		return "Railway Operator"
	case RoleAdministration:
		return "Regional Administration"
	case RoleTrafficPolice:
		return "Traffic Police"
	default:
		return string(r)
	}
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleRailwayOperator, RoleAdministration, RoleTrafficPolice:
		return true
	}
	return false
}

// Capability is an action class a role may be granted.
type Capability string

const (
	CapCreateClosure           Capability = "closure.create"
	CapEditOwnDraftClosure     Capability = "closure.editOwnDraft"
	CapApproveAsAdministration Capability = "closure.approveAdministration"
	CapApproveAsTrafficPolice  Capability = "closure.approveTrafficPolice"
	CapRejectPending           Capability = "closure.rejectPending"
)

// roleCapabilities maps each role to its exclusive capability set.
var roleCapabilities = map[Role][]Capability{
	RoleRailwayOperator: {
		CapCreateClosure,
		CapEditOwnDraftClosure,
	},
	RoleAdministration: {
		CapApproveAsAdministration,
		CapRejectPending,
	},
	RoleTrafficPolice: {
		CapApproveAsTrafficPolice,
		CapRejectPending,
	},
}

// HasCapability reports whether the role grants the capability.
// Unknown or empty roles hold no capabilities.
func HasCapability(role Role, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

// Capabilities returns the capability set for a role. The returned slice
// is a copy; callers may not mutate the role table through it.
func Capabilities(role Role) []Capability {
	caps := roleCapabilities[role]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}
