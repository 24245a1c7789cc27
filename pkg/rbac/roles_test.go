package rbac

import "testing"

func TestHasCapability(t *testing.T) {
	tests := []struct {
		name string
		role Role
		cap  Capability
		want bool
	}{
		{"operator can create", RoleRailwayOperator, CapCreateClosure, true},
		{"operator can edit own draft", RoleRailwayOperator, CapEditOwnDraftClosure, true},
		{"operator cannot approve as administration", RoleRailwayOperator, CapApproveAsAdministration, false},
		{"operator cannot approve as traffic police", RoleRailwayOperator, CapApproveAsTrafficPolice, false},
		{"operator cannot reject", RoleRailwayOperator, CapRejectPending, false},

		{"administration can approve as administration", RoleAdministration, CapApproveAsAdministration, true},
		{"administration can reject", RoleAdministration, CapRejectPending, true},
		{"administration cannot create", RoleAdministration, CapCreateClosure, false},
		{"administration cannot approve as traffic police", RoleAdministration, CapApproveAsTrafficPolice, false},

		{"traffic police can approve as traffic police", RoleTrafficPolice, CapApproveAsTrafficPolice, true},
		{"traffic police can reject", RoleTrafficPolice, CapRejectPending, true},
		{"traffic police cannot create", RoleTrafficPolice, CapCreateClosure, false},
		{"traffic police cannot approve as administration", RoleTrafficPolice, CapApproveAsAdministration, false},

		{"unknown role has no capabilities", Role("dispatcher"), CapCreateClosure, false},
		{"empty role has no capabilities", Role(""), CapRejectPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCapability(tt.role, tt.cap); got != tt.want {
				t.Errorf("HasCapability(%s, %s) = %v, want %v", tt.role, tt.cap, got, tt.want)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleRailwayOperator, RoleAdministration, RoleTrafficPolice} {
		if !r.Valid() {
			t.Errorf("Valid(%s) = false, want true", r)
		}
	}
	if Role("superuser").Valid() {
		t.Error("Valid(superuser) = true, want false")
	}
	if Role("").Valid() {
		t.Error("Valid(\"\") = true, want false")
	}
}

func TestCapabilitiesCopy(t *testing.T) {
	caps := Capabilities(RoleAdministration)
	if len(caps) == 0 {
		t.Fatal("administration should have capabilities")
	}
	caps[0] = Capability("tampered")
	if !HasCapability(RoleAdministration, CapApproveAsAdministration) {
		t.Error("mutating the returned slice must not affect the role table")
	}
}
