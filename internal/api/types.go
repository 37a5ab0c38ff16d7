package api

import (
	"github.com/BME310-2025-Spring-project/group1/internal/insurance"
)

type BookAppointmentRequest struct {
	PatientID   string `json:"patient_id"`
	InsuranceID string `json:"insurance_id"`
	DoctorID    string `json:"doctor_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type AppointmentResponse struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	DoctorID      string `json:"doctor_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
}

type AvailabilityResponse struct {
	DoctorID       string   `json:"doctor_id"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
}

type EligibilityResponse struct {
	PatientID         string             `json:"patient_id"`
	InsuranceID       string             `json:"insurance_id"`
	EligibilityStatus string             `json:"eligibility_status"`
	CoverageDetails   insurance.Coverage `json:"coverage_details"`
	Message           string             `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
