package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/BME310-2025-Spring-project/group1/internal/directory"
	"github.com/BME310-2025-Spring-project/group1/internal/insurance"
)

// Data is everything the reference stores need at startup.
type Data struct {
	Doctors  []directory.Doctor `json:"doctors"`
	Policies []insurance.Policy `json:"policies"`
}

// Fixtures returns the fixed demo data set: three doctors and the two
// well-known policies (INS456 active, INS789 inactive).
func Fixtures() Data {
	return Data{
		Doctors: []directory.Doctor{
			{DoctorID: "D001", Name: "Dr. Alice Brown", Specialty: "General Practice"},
			{DoctorID: "D002", Name: "Dr. Bob Wilson", Specialty: "Cardiology"},
			{DoctorID: "D003", Name: "Dr. Clara Lee", Specialty: "Pediatrics"},
		},
		Policies: []insurance.Policy{
			{
				InsuranceID:       "INS456",
				PatientID:         "P123",
				FirstName:         "John",
				LastName:          "Doe",
				DateOfBirth:       "1980-01-01",
				EligibilityStatus: insurance.StatusActive,
				Coverage: insurance.Coverage{
					PlanName:       "Gold Plan",
					EffectiveDate:  "2024-01-01",
					ExpirationDate: "2025-12-31",
					Copay:          20,
					Deductible:     500,
				},
			},
			{
				InsuranceID:       "INS789",
				PatientID:         "P456",
				FirstName:         "Jane",
				LastName:          "Smith",
				DateOfBirth:       "1990-05-15",
				EligibilityStatus: insurance.StatusInactive,
				Coverage: insurance.Coverage{
					PlanName:       "Silver Plan",
					EffectiveDate:  "2023-01-01",
					ExpirationDate: "2024-06-30",
					Copay:          30,
					Deductible:     1000,
				},
			},
		},
	}
}

var specialties = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

var planNames = []string{"Bronze Plan", "Silver Plan", "Gold Plan", "Platinum Plan"}

// GenerateDoctors fabricates extra doctors with sequential IDs following the
// fixture range.
func GenerateDoctors(count int) []directory.Doctor {
	doctors := make([]directory.Doctor, 0, count)
	for i := 0; i < count; i++ {
		doctors = append(doctors, directory.Doctor{
			DoctorID:  fmt.Sprintf("D%03d", i+100),
			Name:      "Dr. " + gofakeit.Name(),
			Specialty: specialties[gofakeit.Number(0, len(specialties)-1)],
		})
	}
	return doctors
}

// GeneratePolicies fabricates active policies with expirations at least a
// year out, so generated data never trips the expiration rule.
func GeneratePolicies(count int) []insurance.Policy {
	now := time.Now()
	policies := make([]insurance.Policy, 0, count)
	for i := 0; i < count; i++ {
		dob := gofakeit.DateRange(
			now.AddDate(-90, 0, 0),
			now.AddDate(-18, 0, 0),
		)
		policies = append(policies, insurance.Policy{
			InsuranceID:       strings.ToUpper(gofakeit.LetterN(3)) + gofakeit.DigitN(9),
			PatientID:         "P" + gofakeit.DigitN(6),
			FirstName:         gofakeit.FirstName(),
			LastName:          gofakeit.LastName(),
			DateOfBirth:       dob.Format("2006-01-02"),
			EligibilityStatus: insurance.StatusActive,
			Coverage: insurance.Coverage{
				PlanName:       planNames[gofakeit.Number(0, len(planNames)-1)],
				EffectiveDate:  now.AddDate(-1, 0, 0).Format("2006-01-02"),
				ExpirationDate: now.AddDate(gofakeit.Number(1, 3), 0, 0).Format("2006-01-02"),
				Copay:          float64(gofakeit.Number(10, 60)),
				Deductible:     float64(gofakeit.Number(250, 3000)),
			},
		})
	}
	return policies
}

// Load reads a seed file written by cmd/seed.
func Load(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed file: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("parse seed file: %w", err)
	}
	return data, nil
}

// Save writes a seed file for the server to load at startup.
func Save(path string, data Data) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal seed data: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	return nil
}
