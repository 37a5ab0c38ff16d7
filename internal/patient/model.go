package patient

import "time"

// Patient is a front-desk registration record.
type Patient struct {
	PatientID         string    `json:"patient_id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	DateOfBirth       string    `json:"date_of_birth"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	InsuranceProvider string    `json:"insurance_provider"`
	PolicyNumber      string    `json:"policy_number"`
	GroupNumber       string    `json:"group_number,omitempty"`
	RegisteredAt      time.Time `json:"registered_at"`
}
