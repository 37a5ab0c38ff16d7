package api

import (
	"net/http"

	"github.com/BME310-2025-Spring-project/group1/internal/directory"
	"github.com/BME310-2025-Spring-project/group1/internal/insurance"
	"github.com/BME310-2025-Spring-project/group1/internal/patient"
	"github.com/BME310-2025-Spring-project/group1/internal/scheduling"
)

type HealthHandler struct {
	doctors      *directory.Store
	policies     *insurance.Store
	appointments *scheduling.Store
	patients     *patient.Store
	env          string
	version      string
}

func NewHealthHandler(doctors *directory.Store, policies *insurance.Store, appointments *scheduling.Store, patients *patient.Store, env, version string) *HealthHandler {
	return &HealthHandler{
		doctors:      doctors,
		policies:     policies,
		appointments: appointments,
		patients:     patients,
		env:          env,
		version:      version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status  string         `json:"status"`
	Version string         `json:"version,omitempty"`
	Env     string         `json:"env,omitempty"`
	Stores  map[string]int `json:"stores"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	}
	writeJSON(w, http.StatusOK, resp)
}

// Readiness reports the in-memory stores. The service is ready once the
// reference data (doctors, policies) has been seeded.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	stores := map[string]int{
		"doctors":      h.doctors.Count(),
		"policies":     h.policies.Count(),
		"appointments": h.appointments.Count(),
		"patients":     h.patients.Count(),
	}

	status := "ok"
	httpStatus := http.StatusOK
	if stores["doctors"] == 0 || stores["policies"] == 0 {
		status = "error"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, ReadinessResponse{
		Status:  status,
		Version: h.version,
		Env:     h.env,
		Stores:  stores,
	})
}
