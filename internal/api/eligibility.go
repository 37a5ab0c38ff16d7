package api

import (
	"net/http"
	"time"

	"github.com/BME310-2025-Spring-project/group1/internal/insurance"
)

// eligibilityHandler exposes the checker on its own, for front-desk
// verification ahead of booking. Lookup misses are ordinary 200 responses
// with eligibility_status "not_found", matching what clients of the old
// verification endpoint expect.
func eligibilityHandler(checker *insurance.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := r.URL.Query().Get("patient_id")
		insuranceID := r.URL.Query().Get("insurance_id")
		serviceDateRaw := r.URL.Query().Get("service_date")

		if patientID == "" || insuranceID == "" {
			writeError(w, http.StatusBadRequest, "validation_error", "patient_id and insurance_id are required")
			return
		}

		var serviceDate time.Time
		if serviceDateRaw != "" {
			parsed, err := time.Parse("2006-01-02", serviceDateRaw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", "invalid service_date format, use YYYY-MM-DD")
				return
			}
			serviceDate = parsed
		}

		result, err := checker.Check(r.Context(), patientID, insuranceID, serviceDate)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "verification_unavailable", err.Error())
			return
		}

		resp := EligibilityResponse{
			PatientID:   patientID,
			InsuranceID: insuranceID,
			Message:     result.Message,
		}

		switch result.Reason {
		case insurance.ReasonInvalidID:
			writeError(w, http.StatusBadRequest, "invalid_insurance_id", result.Message)
			return
		case insurance.ReasonPolicyNotFound, insurance.ReasonPatientMismatch:
			resp.EligibilityStatus = "not_found"
		case insurance.ReasonInactivePolicy:
			resp.EligibilityStatus = string(insurance.StatusInactive)
			resp.CoverageDetails = result.Policy.Coverage
		case insurance.ReasonExpiredPolicy:
			resp.EligibilityStatus = "expired"
			resp.CoverageDetails = result.Policy.Coverage
		default:
			resp.EligibilityStatus = string(insurance.StatusActive)
			resp.CoverageDetails = result.Policy.Coverage
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
