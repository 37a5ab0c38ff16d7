package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BME310-2025-Spring-project/group1/internal/directory"
	"github.com/BME310-2025-Spring-project/group1/internal/insurance"
	"github.com/BME310-2025-Spring-project/group1/internal/scheduling"
)

func listDoctorsHandler(doctors *directory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, doctors.ListDoctors())
	}
}

func availabilityHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID := r.URL.Query().Get("doctor_id")
		date := r.URL.Query().Get("date")

		slots, err := svc.AvailableSlots(r.Context(), doctorID, date)
		if err != nil {
			handleAvailabilityError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AvailabilityResponse{
			DoctorID:       doctorID,
			Date:           date,
			AvailableSlots: slots,
		})
	}
}

func bookAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		appt, err := svc.BookAppointment(r.Context(), scheduling.BookingRequest{
			PatientID:   req.PatientID,
			InsuranceID: req.InsuranceID,
			DoctorID:    req.DoctorID,
			Date:        req.Date,
			Time:        req.Time,
		})
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, AppointmentResponse{
			AppointmentID: appt.AppointmentID,
			PatientID:     appt.PatientID,
			DoctorID:      appt.DoctorID,
			Date:          appt.Date,
			Time:          appt.Time,
			Status:        string(appt.Status),
			Message:       "Appointment booked successfully",
		})
	}
}

func getAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		appt, err := svc.GetAppointment(r.Context(), id)
		if err != nil {
			if errors.Is(err, scheduling.ErrAppointmentNotFound) {
				writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, AppointmentResponse{
			AppointmentID: appt.AppointmentID,
			PatientID:     appt.PatientID,
			DoctorID:      appt.DoctorID,
			Date:          appt.Date,
			Time:          appt.Time,
			Status:        string(appt.Status),
		})
	}
}

func handleAvailabilityError(w http.ResponseWriter, err error) {
	var missing *scheduling.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		writeError(w, http.StatusBadRequest, "validation_error", missing.Error())
	case errors.Is(err, scheduling.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, scheduling.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// handleBookingError keeps the client-must-fix (400-class) and
// conflict-retry-elsewhere (409) distinction intact.
func handleBookingError(w http.ResponseWriter, err error) {
	var missing *scheduling.MissingFieldsError
	var eligibility *scheduling.EligibilityError
	switch {
	case errors.As(err, &missing):
		writeError(w, http.StatusBadRequest, "missing_fields", missing.Error())
	case errors.Is(err, scheduling.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, scheduling.ErrInvalidTime):
		writeError(w, http.StatusBadRequest, "invalid_time", err.Error())
	case errors.Is(err, scheduling.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	case errors.Is(err, scheduling.ErrInvalidSlot):
		writeError(w, http.StatusBadRequest, "invalid_slot", err.Error())
	case errors.As(err, &eligibility):
		writeError(w, http.StatusBadRequest, string(eligibility.Reason), eligibility.Message)
	case errors.Is(err, scheduling.ErrSlotAlreadyBooked):
		writeError(w, http.StatusConflict, "slot_already_booked", err.Error())
	case errors.Is(err, insurance.ErrVerificationUnavailable):
		writeError(w, http.StatusServiceUnavailable, "verification_unavailable", insurance.ErrVerificationUnavailable.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
