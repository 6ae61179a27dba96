// Package dashboard maps an authenticated identity's role to its dashboard
// descriptor: the set of named sections the role's view is composed of.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/cliniclite/cliniclite/internal/domain/identity"
)

var (
	// ErrNoSession reports dispatch without an authenticated identity. This
	// is a caller precondition violation, not a normal not-found outcome.
	ErrNoSession = errors.New("no user is authenticated")
	// ErrUnknownRole reports a role outside the fixed five.
	ErrUnknownRole = errors.New("unknown role")
)

// Section is one mutually exclusive pane of a dashboard.
type Section struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Descriptor describes one role's dashboard variant: its sections and the
// section shown on entry.
type Descriptor struct {
	Role           identity.Role `json:"role"`
	Title          string        `json:"title"`
	Sections       []Section     `json:"sections"`
	DefaultSection string        `json:"default_section"`
}

// HasSection reports whether the descriptor contains a section by that name.
func (d *Descriptor) HasSection(name string) bool {
	for _, s := range d.Sections {
		if s.Name == name {
			return true
		}
	}
	return false
}

// variants covers every role exactly once; For fails on anything outside it
// rather than falling back, so extending Role forces extending this table.
var variants = map[identity.Role]*Descriptor{
	identity.RoleAdministrator: {
		Role:  identity.RoleAdministrator,
		Title: "Administrator Dashboard",
		Sections: []Section{
			{Name: "overview", Title: "System Overview"},
			{Name: "users", Title: "User Management"},
			{Name: "actions", Title: "Quick Actions"},
		},
		DefaultSection: "overview",
	},
	identity.RoleDoctor: {
		Role:  identity.RoleDoctor,
		Title: "Doctor Dashboard",
		Sections: []Section{
			{Name: "patients", Title: "Patients"},
			{Name: "appointments", Title: "Appointments"},
			{Name: "messages", Title: "Messages"},
			{Name: "reports", Title: "Reports"},
			{Name: "settings", Title: "Settings"},
		},
		DefaultSection: "patients",
	},
	identity.RolePatient: {
		Role:  identity.RolePatient,
		Title: "Patient Dashboard",
		Sections: []Section{
			{Name: "overview", Title: "Overview"},
			{Name: "appointments", Title: "Upcoming Appointments"},
			{Name: "records", Title: "Medical Records"},
		},
		DefaultSection: "overview",
	},
	identity.RoleLaboratory: {
		Role:  identity.RoleLaboratory,
		Title: "Laboratory Dashboard",
		Sections: []Section{
			{Name: "samples", Title: "Samples"},
			{Name: "results", Title: "Results"},
		},
		DefaultSection: "samples",
	},
	identity.RoleVisitor: {
		Role:  identity.RoleVisitor,
		Title: "Visitor Dashboard",
		Sections: []Section{
			{Name: "welcome", Title: "Welcome"},
			{Name: "browse", Title: "Browse"},
		},
		DefaultSection: "welcome",
	},
}

// For returns the dashboard variant for the given identity. A nil identity
// means no session exists and the call itself is invalid.
func For(u *identity.User) (*Descriptor, error) {
	if u == nil {
		return nil, ErrNoSession
	}
	return ForRole(u.Role)
}

// ForRole returns the dashboard variant for a specific role.
func ForRole(role identity.Role) (*Descriptor, error) {
	d, ok := variants[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return d, nil
}
