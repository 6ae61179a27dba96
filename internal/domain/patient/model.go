package patient

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is a single dated clinical entry. Records are owned by
// exactly one patient and are only reachable through that patient.
type MedicalRecord struct {
	ID            string    `json:"id"`
	DateTime      time.Time `json:"date_time"`
	DoctorName    string    `json:"doctor_name"`
	Diagnosis     string    `json:"diagnosis"`
	Symptoms      string    `json:"symptoms"`
	Treatment     string    `json:"treatment"`
	Notes         string    `json:"notes"`
	Prescriptions string    `json:"prescriptions"`
	RecordType    string    `json:"record_type"`
}

// NewMedicalRecord assigns the id and timestamp at construction time.
func NewMedicalRecord(doctorName, diagnosis, symptoms, treatment, notes, prescriptions, recordType string) *MedicalRecord {
	return &MedicalRecord{
		ID:            uuid.New().String(),
		DateTime:      time.Now(),
		DoctorName:    doctorName,
		Diagnosis:     diagnosis,
		Symptoms:      symptoms,
		Treatment:     treatment,
		Notes:         notes,
		Prescriptions: prescriptions,
		RecordType:    recordType,
	}
}

// Patient is a medical-system subject. ID is assigned at construction and
// immutable afterwards.
type Patient struct {
	ID          string           `json:"id"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	DateOfBirth time.Time        `json:"date_of_birth"`
	Gender      string           `json:"gender"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email"`
	Address     string           `json:"address"`
	BloodType   string           `json:"blood_type"`
	Records     []*MedicalRecord `json:"records"`
}

func New(firstName, lastName string, dateOfBirth time.Time, gender, phone, email, address, bloodType string) *Patient {
	return &Patient{
		ID:          uuid.New().String(),
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dateOfBirth,
		Gender:      gender,
		Phone:       phone,
		Email:       email,
		Address:     address,
		BloodType:   bloodType,
	}
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age is the difference in calendar years, ignoring month and day.
func (p *Patient) Age() int {
	if p.DateOfBirth.IsZero() {
		return 0
	}
	return time.Now().Year() - p.DateOfBirth.Year()
}

// AddRecord appends to the patient's record sequence, preserving order.
func (p *Patient) AddRecord(rec *MedicalRecord) {
	p.Records = append(p.Records, rec)
}
