// Package seed populates the stores with the fixed demo dataset used by the
// demo environment and the CLI commands.
package seed

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/cliniclite/cliniclite/internal/domain/identity"
	"github.com/cliniclite/cliniclite/internal/domain/patient"
)

// Users seeds the demo accounts. Returns the number created.
func Users(store *identity.Store, logger zerolog.Logger) int {
	demo := []*identity.User{
		{Username: "admin", Password: "admin123", Email: "admin@example.com", FirstName: "System", LastName: "Administrator", Role: identity.RoleAdministrator},
		{Username: "doctor1", Password: "doctor123", Email: "doctor1@example.com", FirstName: "John", LastName: "Smith", Role: identity.RoleDoctor},
		{Username: "doctor2", Password: "doctor123", Email: "doctor2@example.com", FirstName: "Emily", LastName: "Johnson", Role: identity.RoleDoctor},
		{Username: "patient1", Password: "patient123", Email: "patient1@example.com", FirstName: "Michael", LastName: "Brown", Role: identity.RolePatient},
		{Username: "patient2", Password: "patient123", Email: "patient2@example.com", FirstName: "Sarah", LastName: "Davis", Role: identity.RolePatient},
		{Username: "lab1", Password: "lab123", Email: "lab1@example.com", FirstName: "Central", LastName: "Laboratory", Role: identity.RoleLaboratory},
		{Username: "visitor", Password: "visitor123", Email: "visitor@example.com", FirstName: "Guest", LastName: "User", Role: identity.RoleVisitor},
	}
	created := 0
	for _, u := range demo {
		if err := store.Create(u); err != nil {
			logger.Warn().Str("username", u.Username).Err(err).Msg("skipping demo user")
			continue
		}
		created++
	}
	logger.Info().Int("count", created).Msg("seeded demo users")
	return created
}

// Patients seeds the demo registry. Returns the number created.
func Patients(registry *patient.Registry, logger zerolog.Logger) int {
	p1 := patient.New("John", "Smith",
		time.Date(1980, time.April, 15, 0, 0, 0, 0, time.UTC),
		"Male", "555-123-4567", "john.smith@example.com",
		"123 Main St, Anytown, USA", "O+")
	p1.AddRecord(patient.NewMedicalRecord(
		"Dr. Johnson",
		"Hypertension",
		"Headaches, dizziness, elevated blood pressure (150/95)",
		"Prescribed lisinopril 10mg daily",
		"Patient advised to reduce sodium intake and increase physical activity",
		"Lisinopril 10mg, 30 tablets, take 1 daily",
		"Check-up"))
	p1.AddRecord(patient.NewMedicalRecord(
		"Dr. Smith",
		"Upper respiratory infection",
		"Sore throat, cough, nasal congestion, mild fever (100.2F)",
		"Prescribed amoxicillin 500mg TID for 10 days",
		"Patient advised to rest and increase fluid intake",
		"Amoxicillin 500mg, 30 tablets, take 1 three times daily",
		"Illness"))

	p2 := patient.New("Emily", "Johnson",
		time.Date(1992, time.July, 22, 0, 0, 0, 0, time.UTC),
		"Female", "555-987-6543", "emily.johnson@example.com",
		"456 Oak Ave, Somecity, USA", "A-")
	p2.AddRecord(patient.NewMedicalRecord(
		"Dr. Davis",
		"Annual physical",
		"No current complaints",
		"Routine bloodwork ordered",
		"All vitals within normal limits",
		"None",
		"Check-up"))

	p3 := patient.New("Michael", "Williams",
		time.Date(1975, time.October, 10, 0, 0, 0, 0, time.UTC),
		"Male", "555-456-7890", "michael.williams@example.com",
		"789 Pine St, Othertown, USA", "B+")
	p3.AddRecord(patient.NewMedicalRecord(
		"Dr. Wilson",
		"Type 2 Diabetes",
		"Polyuria, polydipsia, fatigue, blurred vision",
		"Prescribed metformin 500mg BID",
		"Patient referred to nutritionist for dietary guidance",
		"Metformin 500mg, 60 tablets, take 1 twice daily",
		"Chronic"))

	p4 := patient.New("Sarah", "Brown",
		time.Date(1988, time.January, 5, 0, 0, 0, 0, time.UTC),
		"Female", "555-234-5678", "sarah.brown@example.com",
		"321 Elm St, Somewhere, USA", "AB+")
	p4.AddRecord(patient.NewMedicalRecord(
		"Dr. Anderson",
		"Migraine",
		"Severe headache, photophobia, nausea",
		"Prescribed sumatriptan 50mg as needed",
		"Patient advised to identify and avoid triggers",
		"Sumatriptan 50mg, 9 tablets, take 1 as needed for migraine",
		"Illness"))

	for _, p := range []*patient.Patient{p1, p2, p3, p4} {
		registry.Add(p)
	}
	logger.Info().Int("count", 4).Msg("seeded demo patients")
	return 4
}
