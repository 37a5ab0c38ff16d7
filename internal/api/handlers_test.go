package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BME310-2025-Spring-project/group1/internal/api"
	"github.com/BME310-2025-Spring-project/group1/internal/directory"
	"github.com/BME310-2025-Spring-project/group1/internal/insurance"
	"github.com/BME310-2025-Spring-project/group1/internal/patient"
	"github.com/BME310-2025-Spring-project/group1/internal/scheduling"
	"github.com/BME310-2025-Spring-project/group1/internal/seed"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	data := seed.Fixtures()
	doctors := directory.NewStore(data.Doctors)
	policies := insurance.NewStore(data.Policies)
	appointments := scheduling.NewStore()
	patients := patient.NewStore()
	log := zap.NewNop()

	checker := insurance.NewChecker(policies, 3, 0, log)
	booking := scheduling.NewService(doctors, checker, appointments, log)

	return api.NewRouter(api.RouterConfig{
		Booking:      booking,
		Doctors:      doctors,
		Policies:     policies,
		Checker:      checker,
		Appointments: appointments,
		Patients:     patients,
		Log:          log,
		Env:          "test",
		Version:      "test",
	})
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func bookingBody(overrides map[string]string) map[string]string {
	body := map[string]string{
		"patient_id":   "P123",
		"insurance_id": "INS456",
		"doctor_id":    "D001",
		"date":         "2025-06-10",
		"time":         "09:00",
	}
	for k, v := range overrides {
		if v == "" {
			delete(body, k)
		} else {
			body[k] = v
		}
	}
	return body
}

func TestGetDoctors(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/doctors", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doctors []directory.Doctor
	decode(t, rec, &doctors)
	require.Len(t, doctors, 3)
	assert.Equal(t, "D001", doctors[0].DoctorID)
}

func TestAvailabilityFreshThenBooked(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/availability?doctor_id=D001&date=2025-06-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var avail api.AvailabilityResponse
	decode(t, rec, &avail)
	assert.Len(t, avail.AvailableSlots, 16)
	assert.Equal(t, "09:00", avail.AvailableSlots[0])

	rec = doJSON(t, router, http.MethodPost, "/api/appointments", bookingBody(nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/availability?doctor_id=D001&date=2025-06-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &avail)
	assert.Len(t, avail.AvailableSlots, 15)
	assert.NotContains(t, avail.AvailableSlots, "09:00")
}

func TestAvailabilityErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"missing params", "/api/availability", http.StatusBadRequest, "validation_error"},
		{"malformed date", "/api/availability?doctor_id=D001&date=2025-02-30", http.StatusBadRequest, "invalid_date"},
		{"unknown doctor", "/api/availability?doctor_id=D999&date=2025-06-10", http.StatusNotFound, "doctor_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var errResp api.ErrorResponse
			decode(t, rec, &errResp)
			assert.Equal(t, tt.wantCode, errResp.Error)
		})
	}
}

func TestBookAppointment(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/appointments", bookingBody(nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var appt api.AppointmentResponse
	decode(t, rec, &appt)
	assert.NotEmpty(t, appt.AppointmentID)
	assert.Equal(t, "confirmed", appt.Status)
	assert.Equal(t, "Appointment booked successfully", appt.Message)

	// The same request again conflicts.
	rec = doJSON(t, router, http.MethodPost, "/api/appointments", bookingBody(nil))
	require.Equal(t, http.StatusConflict, rec.Code)

	var errResp api.ErrorResponse
	decode(t, rec, &errResp)
	assert.Equal(t, "slot_already_booked", errResp.Error)

	// The winner is retrievable.
	rec = doJSON(t, router, http.MethodGet, "/api/appointments/"+appt.AppointmentID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched api.AppointmentResponse
	decode(t, rec, &fetched)
	assert.Equal(t, appt.AppointmentID, fetched.AppointmentID)
}

func TestBookAppointmentRejections(t *testing.T) {
	tests := []struct {
		name       string
		overrides  map[string]string
		wantStatus int
		wantCode   string
	}{
		{"missing fields", map[string]string{"patient_id": "", "time": ""}, http.StatusBadRequest, "missing_fields"},
		{"calendar-invalid date", map[string]string{"date": "2025-02-30"}, http.StatusBadRequest, "invalid_date"},
		{"malformed time", map[string]string{"time": "25:61"}, http.StatusBadRequest, "invalid_time"},
		{"unknown doctor", map[string]string{"doctor_id": "D999"}, http.StatusNotFound, "doctor_not_found"},
		{"off-template slot", map[string]string{"time": "09:05"}, http.StatusBadRequest, "invalid_slot"},
		{"bad insurance id format", map[string]string{"insurance_id": "bogus"}, http.StatusBadRequest, "invalid_insurance_id"},
		{"unknown policy", map[string]string{"insurance_id": "INS999"}, http.StatusBadRequest, "policy_not_found"},
		{"patient mismatch", map[string]string{"patient_id": "P999"}, http.StatusBadRequest, "patient_mismatch"},
		{"inactive policy", map[string]string{"patient_id": "P456", "insurance_id": "INS789"}, http.StatusBadRequest, "inactive_policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)

			rec := doJSON(t, router, http.MethodPost, "/api/appointments", bookingBody(tt.overrides))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var errResp api.ErrorResponse
			decode(t, rec, &errResp)
			assert.Equal(t, tt.wantCode, errResp.Error)
		})
	}
}

func TestBookAppointmentBadBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAppointmentNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/appointments/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEligibilityEndpoint(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantEligib string
	}{
		{"active policy", "/api/insurance/eligibility?patient_id=P123&insurance_id=INS456&service_date=2025-06-10", http.StatusOK, "active"},
		{"inactive policy", "/api/insurance/eligibility?patient_id=P456&insurance_id=INS789&service_date=2023-06-10", http.StatusOK, "inactive"},
		{"unknown policy", "/api/insurance/eligibility?patient_id=P123&insurance_id=INS999", http.StatusOK, "not_found"},
		{"patient mismatch", "/api/insurance/eligibility?patient_id=P999&insurance_id=INS456&service_date=2025-06-10", http.StatusOK, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodGet, tt.target, nil)
			require.Equal(t, tt.wantStatus, rec.Code)

			var resp api.EligibilityResponse
			decode(t, rec, &resp)
			assert.Equal(t, tt.wantEligib, resp.EligibilityStatus)
		})
	}

	t.Run("active policy carries coverage", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/insurance/eligibility?patient_id=P123&insurance_id=INS456&service_date=2025-06-10", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.EligibilityResponse
		decode(t, rec, &resp)
		assert.Equal(t, "Gold Plan", resp.CoverageDetails.PlanName)
		assert.Equal(t, float64(20), resp.CoverageDetails.Copay)
	})

	t.Run("missing params", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/insurance/eligibility?patient_id=P123", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed service date", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/insurance/eligibility?patient_id=P123&insurance_id=INS456&service_date=2025-13-01", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRegisterPatient(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]string{
		"first_name":         "John",
		"last_name":          "Doe",
		"date_of_birth":      "1980-01-01",
		"email":              "john.doe@example.com",
		"phone":              "5551234567",
		"address":            "12 Main Street",
		"insurance_provider": "Acme Health",
		"policy_number":      "INS456",
	}

	rec := doJSON(t, router, http.MethodPost, "/api/patients", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var p patient.Patient
	decode(t, rec, &p)
	require.NotEmpty(t, p.PatientID)

	rec = doJSON(t, router, http.MethodGet, "/api/patients/"+p.PatientID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/patients/P-missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterPatientValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/patients", map[string]string{"first_name": "John"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp api.ErrorResponse
	decode(t, rec, &errResp)
	assert.Equal(t, "validation_error", errResp.Error)
	assert.Contains(t, errResp.Details, "Last Name is required")
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ready api.ReadinessResponse
	decode(t, rec, &ready)
	assert.Equal(t, "ok", ready.Status)
	assert.Equal(t, 3, ready.Stores["doctors"])
	assert.Equal(t, 2, ready.Stores["policies"])
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/doctors", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

func TestConcurrentBookingOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	const attempts = 16
	results := make(chan int, attempts)
	raw, err := json.Marshal(bookingBody(nil))
	require.NoError(t, err)

	for i := 0; i < attempts; i++ {
		go func() {
			resp, err := http.Post(srv.URL+"/api/appointments", "application/json", bytes.NewReader(raw))
			if err != nil {
				results <- 0
				return
			}
			defer resp.Body.Close()
			results <- resp.StatusCode
		}()
	}

	created, conflicts := 0, 0
	for i := 0; i < attempts; i++ {
		switch <-results {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		default:
			t.Error("unexpected status from concurrent booking")
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)
}
