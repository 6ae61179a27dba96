package patient

import (
	"errors"
	"strings"
	"sync"
)

// ErrNotFound reports an operation against an unknown patient id.
var ErrNotFound = errors.New("patient not found")

// Registry is the in-memory patient collection. Insertion order is preserved
// and reflected by All and Filter.
type Registry struct {
	mu       sync.RWMutex
	patients []*Patient
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a patient. The id must already be set by the constructor.
func (r *Registry) Add(p *Patient) {
	r.mu.Lock()
	r.patients = append(r.patients, p)
	r.mu.Unlock()
}

func (r *Registry) FindByID(id string) (*Patient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Update replaces the stored record with the same id.
func (r *Registry) Update(p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.patients {
		if existing.ID == p.ID {
			r.patients[i] = p
			return nil
		}
	}
	return ErrNotFound
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.patients {
		if p.ID == id {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// AddMedicalRecord appends a record to the owning patient's sequence. The
// record is stored nowhere if the patient does not exist.
func (r *Registry) AddMedicalRecord(patientID string, rec *MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if p.ID == patientID {
			p.AddRecord(rec)
			return nil
		}
	}
	return ErrNotFound
}

// All returns a snapshot in insertion order.
func (r *Registry) All() []*Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Patient, len(r.patients))
	copy(out, r.patients)
	return out
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients)
}

// Filter returns every patient where the query is a case-insensitive
// substring of first name, last name, email, phone, address, or blood type.
// Only the empty query short-circuits to everything; whitespace queries
// substring-match like any other. Order is preserved.
func (r *Registry) Filter(query string) []*Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if query == "" {
		out := make([]*Patient, len(r.patients))
		copy(out, r.patients)
		return out
	}
	q := strings.ToLower(query)
	var out []*Patient
	for _, p := range r.patients {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p *Patient, q string) bool {
	for _, field := range []string{p.FirstName, p.LastName, p.Email, p.Phone, p.Address, p.BloodType} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
