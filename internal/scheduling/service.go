package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BME310-2025-Spring-project/group1/internal/directory"
	"github.com/BME310-2025-Spring-project/group1/internal/insurance"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrInvalidDate    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime    = errors.New("invalid time format, use HH:MM")
	ErrInvalidSlot    = errors.New("time is not a bookable slot")
)

// MissingFieldsError reports which required request fields were absent or
// empty, in request-field order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// EligibilityError carries the checker's rejection through the booking
// pipeline so the transport layer can map it to a reason code.
type EligibilityError struct {
	Reason  insurance.Reason
	Message string
}

func (e *EligibilityError) Error() string {
	return e.Message
}

type BookingRequest struct {
	PatientID   string
	InsuranceID string
	DoctorID    string
	Date        string
	Time        string
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Service is the booking engine. It reconciles the doctor directory, the
// eligibility checker and the slot calendar into a single booking decision.
type Service struct {
	doctors *directory.Store
	checker *insurance.Checker
	store   *Store
	log     *zap.Logger
}

func NewService(doctors *directory.Store, checker *insurance.Checker, store *Store, log *zap.Logger) *Service {
	return &Service{
		doctors: doctors,
		checker: checker,
		store:   store,
		log:     log,
	}
}

// AvailableSlots derives the free slots for a doctor on a date: the fixed
// daily template minus whatever is already booked, in template order.
func (s *Service) AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	var missing []string
	if doctorID == "" {
		missing = append(missing, "doctor_id")
	}
	if date == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	if !s.doctors.DoctorExists(doctorID) {
		return nil, ErrDoctorNotFound
	}

	booked := s.store.BookedTimes(doctorID, date)
	available := make([]string, 0, len(slotTemplate))
	for _, slot := range slotTemplate {
		if _, taken := booked[slot]; !taken {
			available = append(available, slot)
		}
	}
	return available, nil
}

// BookAppointment runs the validation pipeline in a fixed order, stopping at
// the first failure: field presence, date grammar, time grammar, doctor
// existence, slot membership, insurance eligibility, then the atomic
// check-and-insert against the appointment store. A request that fails at
// any step has made no mutation.
func (s *Service) BookAppointment(ctx context.Context, req BookingRequest) (*Appointment, error) {
	if err := requireFields(req); err != nil {
		return nil, err
	}

	serviceDate, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		return nil, ErrInvalidTime
	}

	if !s.doctors.DoctorExists(req.DoctorID) {
		return nil, ErrDoctorNotFound
	}
	if !ValidSlot(req.Time) {
		return nil, ErrInvalidSlot
	}

	result, err := s.checker.Check(ctx, req.PatientID, req.InsuranceID, serviceDate)
	if err != nil {
		return nil, fmt.Errorf("check eligibility: %w", err)
	}
	if !result.Eligible {
		return nil, &EligibilityError{Reason: result.Reason, Message: result.Message}
	}

	appt := Appointment{
		AppointmentID: uuid.NewString(),
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		Date:          req.Date,
		Time:          req.Time,
		Status:        StatusConfirmed,
		CreatedAt:     time.Now(),
	}

	if err := s.store.Insert(appt, s.bookedEvent(appt)); err != nil {
		return nil, err
	}

	s.log.Info("appointment booked",
		zap.String("appointment_id", appt.AppointmentID),
		zap.String("doctor_id", appt.DoctorID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time),
	)

	return &appt, nil
}

// GetAppointment looks a confirmed appointment up by its ID.
func (s *Service) GetAppointment(ctx context.Context, id string) (Appointment, error) {
	return s.store.GetAppointment(id)
}

func requireFields(req BookingRequest) error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"patient_id", req.PatientID},
		{"insurance_id", req.InsuranceID},
		{"doctor_id", req.DoctorID},
		{"date", req.Date},
		{"time", req.Time},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

func (s *Service) bookedEvent(appt Appointment) Event {
	payload, err := json.Marshal(map[string]string{
		"patient_id": appt.PatientID,
		"doctor_id":  appt.DoctorID,
		"date":       appt.Date,
		"time":       appt.Time,
	})
	if err != nil {
		s.log.Warn("marshal booking event payload", zap.Error(err))
		payload = nil
	}
	return Event{
		Type:          EventAppointmentBooked,
		AppointmentID: appt.AppointmentID,
		Payload:       payload,
		CreatedAt:     time.Now(),
	}
}
