package identity

import (
	"fmt"
	"strings"
)

// Service wraps the store with field validation. Not-found and duplicate-key
// outcomes pass through as the store's sentinel errors; validation failures
// are reported as a single error listing every problem and mutate nothing.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Store() *Store {
	return s.store
}

func validateUser(u *User) error {
	var problems []string
	if u.Username == "" {
		problems = append(problems, "username is required")
	}
	if u.Password == "" {
		problems = append(problems, "password is required")
	}
	if u.FirstName == "" || u.LastName == "" {
		problems = append(problems, "first_name and last_name are required")
	}
	if !u.Role.Valid() {
		problems = append(problems, fmt.Sprintf("role must be one of %v", Roles()))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid user: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (s *Service) CreateUser(u *User) error {
	if err := validateUser(u); err != nil {
		return err
	}
	return s.store.Create(u)
}

// Register creates the account and sets it as the current session, matching
// the signup flow where a new user is logged in immediately.
func (s *Service) Register(u *User) error {
	if err := s.CreateUser(u); err != nil {
		return err
	}
	s.store.SetSession(u)
	return nil
}

func (s *Service) UpdateUser(u *User) error {
	if err := validateUser(u); err != nil {
		return err
	}
	return s.store.Update(u)
}

func (s *Service) DeleteUser(username string) error {
	return s.store.Delete(username)
}

func (s *Service) GetUser(username string) (*User, bool) {
	return s.store.FindByUsername(username)
}

func (s *Service) ListUsers() []*User {
	return s.store.All()
}

func (s *Service) ListUsersByRole(role Role) []*User {
	return s.store.ListByRole(role)
}
