// Package shell is the navigation and view-composition state machine: logged
// out shows the auth surface, logged in shows one role-specific dashboard
// with exactly one of its sections active at a time. The rendering layer
// subscribes to shell events and binds to the underlying stores; the shell
// itself holds no view state beyond the active section name.
package shell

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cliniclite/cliniclite/internal/domain/dashboard"
	"github.com/cliniclite/cliniclite/internal/domain/identity"
)

type State string

const (
	StateLoggedOut State = "logged_out"
	StateLoggedIn  State = "logged_in"
)

var (
	// ErrBadCredentials reports a failed login. Normal outcome, no lockout.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrUnknownSection reports a section the active dashboard does not have.
	ErrUnknownSection = errors.New("unknown section")
	// ErrLoggedOut reports a section switch with no active dashboard.
	ErrLoggedOut = errors.New("not logged in")
)

// EventKind tags shell events for subscribers.
type EventKind string

const (
	EventLogin   EventKind = "login"
	EventLogout  EventKind = "logout"
	EventSection EventKind = "section"
)

// Event is delivered to subscribers after each completed transition.
type Event struct {
	Kind      EventKind
	User      *identity.User
	Dashboard *dashboard.Descriptor
	Section   string
}

// Shell drives the two top-level states and per-dashboard section toggling.
type Shell struct {
	users *identity.Store

	mu        sync.RWMutex
	state     State
	active    *dashboard.Descriptor
	section   string
	listeners []func(Event)
}

// New wires a shell to the identity store. The shell follows session changes
// made behind its back (an administrator deleting the logged-in account must
// drop the UI back to the login surface).
func New(users *identity.Store) *Shell {
	sh := &Shell{users: users, state: StateLoggedOut}
	users.SubscribeSession(sh.onSessionChange)
	return sh
}

// Subscribe registers a listener for shell events. Listeners run on the
// calling goroutine of the transition that produced the event.
func (sh *Shell) Subscribe(fn func(Event)) {
	sh.mu.Lock()
	sh.listeners = append(sh.listeners, fn)
	sh.mu.Unlock()
}

// Login authenticates against the store. The session subscription performs
// the dashboard transition, so the shell is logged in at its default section
// by the time Login returns. On failure the shell state is unchanged.
func (sh *Shell) Login(username, password string) error {
	if !sh.users.Authenticate(username, password) {
		return ErrBadCredentials
	}
	return nil
}

// Register creates the account and sets it as the session, mirroring the
// signup-then-straight-in flow. The transition runs via the subscription.
func (sh *Shell) Register(svc *identity.Service, u *identity.User) error {
	return svc.Register(u)
}

func (sh *Shell) enterDashboard(u *identity.User) {
	d, err := dashboard.For(u)
	if err != nil {
		return
	}
	sh.mu.Lock()
	// A refreshed session for the same role keeps the visible section.
	if sh.state == StateLoggedIn && sh.active != nil && sh.active.Role == u.Role {
		sh.mu.Unlock()
		return
	}
	sh.state = StateLoggedIn
	sh.active = d
	sh.section = d.DefaultSection
	sh.mu.Unlock()
	sh.emit(Event{Kind: EventLogin, User: u, Dashboard: d, Section: d.DefaultSection})
}

// Logout clears the session and discards the dashboard. Idempotent.
func (sh *Shell) Logout() {
	sh.users.Logout()
}

// SelectSection switches the visible section of the active dashboard.
// Sections keep no transient state across a switch; everything a section
// shows is re-read from the stores.
func (sh *Shell) SelectSection(name string) error {
	sh.mu.Lock()
	if sh.state != StateLoggedIn || sh.active == nil {
		sh.mu.Unlock()
		return ErrLoggedOut
	}
	if !sh.active.HasSection(name) {
		sh.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	sh.section = name
	d := sh.active
	sh.mu.Unlock()
	sh.emit(Event{Kind: EventSection, User: sh.users.Current(), Dashboard: d, Section: name})
	return nil
}

func (sh *Shell) State() State {
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.state
}

// ActiveDashboard returns the current descriptor, or nil when logged out.
func (sh *Shell) ActiveDashboard() *dashboard.Descriptor {
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.active
}

// ActiveSection returns the visible section name, or "" when logged out.
func (sh *Shell) ActiveSection() string {
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.section
}

// onSessionChange keeps the shell consistent with the session no matter who
// mutated it: a set session enters the role dashboard, a cleared session
// always lands on the login surface.
func (sh *Shell) onSessionChange(u *identity.User) {
	if u != nil {
		sh.enterDashboard(u)
		return
	}
	sh.mu.Lock()
	if sh.state == StateLoggedOut {
		sh.mu.Unlock()
		return
	}
	sh.state = StateLoggedOut
	sh.active = nil
	sh.section = ""
	sh.mu.Unlock()
	sh.emit(Event{Kind: EventLogout})
}

func (sh *Shell) emit(e Event) {
	sh.mu.RLock()
	listeners := make([]func(Event), len(sh.listeners))
	copy(listeners, sh.listeners)
	sh.mu.RUnlock()
	for _, fn := range listeners {
		fn(e)
	}
}
