package insurance

type PolicyStatus string

const (
	StatusActive   PolicyStatus = "active"
	StatusInactive PolicyStatus = "inactive"
)

type Coverage struct {
	PlanName       string  `json:"plan_name"`
	EffectiveDate  string  `json:"effective_date"`
	ExpirationDate string  `json:"expiration_date"`
	Copay          float64 `json:"copay"`
	Deductible     float64 `json:"deductible"`
}

// Policy is an insurance record as held by the payer. Read-only on the
// booking path.
type Policy struct {
	InsuranceID       string       `json:"insurance_id"`
	PatientID         string       `json:"patient_id"`
	FirstName         string       `json:"first_name"`
	LastName          string       `json:"last_name"`
	DateOfBirth       string       `json:"date_of_birth"`
	EligibilityStatus PolicyStatus `json:"eligibility_status"`
	Coverage          Coverage     `json:"coverage_details"`
}
