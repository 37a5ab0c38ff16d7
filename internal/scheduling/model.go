package scheduling

import "time"

type AppointmentStatus string

const StatusConfirmed AppointmentStatus = "confirmed"

// Appointment is created exactly once per successful booking and never
// mutated afterwards. Date is YYYY-MM-DD, Time is one of the template slots.
type Appointment struct {
	AppointmentID string            `json:"appointment_id"`
	PatientID     string            `json:"patient_id"`
	DoctorID      string            `json:"doctor_id"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

const EventAppointmentBooked = "APPOINTMENT_BOOKED"

// Event is an append-only audit record kept alongside the appointments.
type Event struct {
	Type          string
	AppointmentID string
	Payload       []byte
	CreatedAt     time.Time
}
