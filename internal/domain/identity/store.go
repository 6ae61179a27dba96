package identity

import (
	"errors"
	"sync"
)

var (
	// ErrNotFound reports an update or delete against an unknown username.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername reports a create with a username already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// Store holds every user account plus the single current session. Exactly one
// session exists process-wide; it is either nil or points at a stored user.
// Insertion order of accounts is preserved.
type Store struct {
	mu      sync.RWMutex
	users   []*User
	current *User

	sessionSubs []func(*User)
}

func NewStore() *Store {
	return &Store{}
}

// FindByUsername performs an exact, case-sensitive lookup. An empty username
// never matches.
func (s *Store) FindByUsername(username string) (*User, bool) {
	if username == "" {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(username)
}

func (s *Store) findLocked(username string) (*User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return nil, false
}

// Create appends a new account. The username must not be taken.
func (s *Store) Create(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findLocked(u.Username); ok {
		return ErrDuplicateUsername
	}
	s.users = append(s.users, u)
	return nil
}

// Update replaces the record stored under u.Username. If the updated user is
// the session subject, the session reference follows the new record.
func (s *Store) Update(u *User) error {
	s.mu.Lock()
	for i, existing := range s.users {
		if existing.Username == u.Username {
			s.users[i] = u
			if s.current != nil && s.current.Username == u.Username {
				s.current = u
				s.mu.Unlock()
				s.notifySession(u)
				return nil
			}
			s.mu.Unlock()
			return nil
		}
	}
	s.mu.Unlock()
	return ErrNotFound
}

// Delete removes the account. Deleting the session's own subject also clears
// the session.
func (s *Store) Delete(username string) error {
	s.mu.Lock()
	for i, u := range s.users {
		if u.Username == username {
			s.users = append(s.users[:i], s.users[i+1:]...)
			if s.current != nil && s.current.Username == username {
				s.current = nil
				s.mu.Unlock()
				s.notifySession(nil)
				return nil
			}
			s.mu.Unlock()
			return nil
		}
	}
	s.mu.Unlock()
	return ErrNotFound
}

// ListByRole returns all users with the given role, store order preserved.
func (s *Store) ListByRole(role Role) []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// All returns a snapshot of every account in insertion order.
func (s *Store) All() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Authenticate checks the supplied credentials by exact string equality.
// Success sets the session; failure leaves any existing session untouched.
func (s *Store) Authenticate(username, password string) bool {
	s.mu.Lock()
	u, ok := s.findLocked(username)
	if !ok || u.Password != password {
		s.mu.Unlock()
		return false
	}
	s.current = u
	s.mu.Unlock()
	s.notifySession(u)
	return true
}

// Logout clears the session unconditionally.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notifySession(nil)
}

// Current returns the session subject, or nil when no one is authenticated.
func (s *Store) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

// SetSession points the session at the given user. Used by the signup flow,
// which authenticates the account it just created.
func (s *Store) SetSession(u *User) {
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	s.notifySession(u)
}

// SubscribeSession registers a callback invoked after every session change.
// The presentation layer uses this to follow login/logout transitions.
// Callbacks run outside the store lock and may re-enter the store.
func (s *Store) SubscribeSession(fn func(*User)) {
	s.mu.Lock()
	s.sessionSubs = append(s.sessionSubs, fn)
	s.mu.Unlock()
}

func (s *Store) notifySession(u *User) {
	s.mu.RLock()
	subs := make([]func(*User), len(s.sessionSubs))
	copy(subs, s.sessionSubs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(u)
	}
}
