package identity

import "testing"

func TestRoles_Closed(t *testing.T) {
	roles := Roles()
	if len(roles) != 5 {
		t.Fatalf("expected 5 roles, got %d", len(roles))
	}
	for _, r := range roles {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
		if r.Label() == "" {
			t.Errorf("role %q should have a label", r)
		}
	}
	if Role("wizard").Valid() {
		t.Error("unknown role must be invalid")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("doctor"); err != nil || r != RoleDoctor {
		t.Errorf("expected RoleDoctor, got %v, %v", r, err)
	}
	if r, err := ParseRole("Doctor"); err != nil || r != RoleDoctor {
		t.Errorf("expected RoleDoctor from label, got %v, %v", r, err)
	}
	if _, err := ParseRole("wizard"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestUser_FullName(t *testing.T) {
	u := &User{FirstName: "John", LastName: "Smith"}
	if got := u.FullName(); got != "John Smith" {
		t.Errorf("expected %q, got %q", "John Smith", got)
	}
}
