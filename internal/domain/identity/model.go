package identity

import "fmt"

// Role is one of the five fixed access roles. There are no dynamic roles;
// dashboard dispatch relies on this set being closed.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleDoctor        Role = "doctor"
	RolePatient       Role = "patient"
	RoleLaboratory    Role = "laboratory"
	RoleVisitor       Role = "visitor"
)

var roleLabels = map[Role]string{
	RoleAdministrator: "Administrator",
	RoleDoctor:        "Doctor",
	RolePatient:       "Patient",
	RoleLaboratory:    "Laboratory",
	RoleVisitor:       "Visitor",
}

// Roles lists every role in declaration order.
func Roles() []Role {
	return []Role{RoleAdministrator, RoleDoctor, RolePatient, RoleLaboratory, RoleVisitor}
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the human-readable name of the role.
func (r Role) Label() string {
	return roleLabels[r]
}

func (r Role) String() string {
	return string(r)
}

// ParseRole accepts the wire form of a role ("doctor") or its label ("Doctor").
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if r.Valid() {
		return r, nil
	}
	for role, label := range roleLabels {
		if label == s {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is an account record. Username is the primary key and is compared
// case-sensitively. Password is an opaque string checked by exact equality.
type User struct {
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
