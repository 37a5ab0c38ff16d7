package patient

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	dobPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// RegistrationRequest carries the front-desk form fields. Group number is
// the only optional one.
type RegistrationRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	DateOfBirth       string `json:"date_of_birth"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	InsuranceProvider string `json:"insurance_provider"`
	PolicyNumber      string `json:"policy_number"`
	GroupNumber       string `json:"group_number"`
}

// ValidationError collects every failed rule so the form can show them all
// at once rather than one per submit.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate applies the registration form rules and returns nil or a
// ValidationError listing every violation.
func Validate(req RegistrationRequest) error {
	var problems []string

	if strings.TrimSpace(req.FirstName) == "" {
		problems = append(problems, "First Name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		problems = append(problems, "Last Name is required")
	}
	if !dobPattern.MatchString(req.DateOfBirth) {
		problems = append(problems, "Date of Birth must be in YYYY-MM-DD format")
	} else if _, err := time.Parse("2006-01-02", req.DateOfBirth); err != nil {
		problems = append(problems, "Date of Birth must be a real calendar date")
	}
	if !emailPattern.MatchString(req.Email) {
		problems = append(problems, "Valid Email is required")
	}
	if !phonePattern.MatchString(req.Phone) {
		problems = append(problems, "Phone Number must be 10 digits")
	}
	if strings.TrimSpace(req.Address) == "" {
		problems = append(problems, "Address is required")
	}
	if strings.TrimSpace(req.InsuranceProvider) == "" {
		problems = append(problems, "Insurance Provider is required")
	}
	if strings.TrimSpace(req.PolicyNumber) == "" {
		problems = append(problems, "Policy Number is required")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// NewPatient builds a Patient from a validated request.
func NewPatient(req RegistrationRequest) Patient {
	return Patient{
		PatientID:         "P" + strings.ToUpper(uuid.NewString()[:8]),
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		DateOfBirth:       req.DateOfBirth,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           strings.TrimSpace(req.Address),
		InsuranceProvider: strings.TrimSpace(req.InsuranceProvider),
		PolicyNumber:      strings.TrimSpace(req.PolicyNumber),
		GroupNumber:       strings.TrimSpace(req.GroupNumber),
		RegisteredAt:      time.Now(),
	}
}
