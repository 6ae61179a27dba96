package patient

import (
	"fmt"
	"strings"
	"time"
)

// Service wraps the registry with field validation for the edit surfaces.
type Service struct {
	registry *Registry
}

func NewService(registry *Registry) *Service {
	return &Service{registry: registry}
}

func (s *Service) Registry() *Registry {
	return s.registry
}

func validatePatient(p *Patient) error {
	var problems []string
	if p.FirstName == "" || p.LastName == "" {
		problems = append(problems, "first_name and last_name are required")
	}
	if !p.DateOfBirth.IsZero() && p.DateOfBirth.After(time.Now()) {
		problems = append(problems, "date_of_birth cannot be in the future")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid patient: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (s *Service) AddPatient(p *Patient) error {
	if err := validatePatient(p); err != nil {
		return err
	}
	s.registry.Add(p)
	return nil
}

func (s *Service) GetPatient(id string) (*Patient, bool) {
	return s.registry.FindByID(id)
}

func (s *Service) UpdatePatient(p *Patient) error {
	if err := validatePatient(p); err != nil {
		return err
	}
	return s.registry.Update(p)
}

func (s *Service) DeletePatient(id string) error {
	return s.registry.Delete(id)
}

func (s *Service) AddMedicalRecord(patientID string, rec *MedicalRecord) error {
	if rec.DoctorName == "" {
		return fmt.Errorf("invalid medical record: doctor_name is required")
	}
	return s.registry.AddMedicalRecord(patientID, rec)
}

func (s *Service) FilterPatients(query string) []*Patient {
	return s.registry.Filter(query)
}

func (s *Service) ListPatients() []*Patient {
	return s.registry.All()
}
