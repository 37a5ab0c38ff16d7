package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BME310-2025-Spring-project/group1/internal/patient"
)

func registerPatientHandler(patients *patient.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req patient.RegistrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := patients.Register(req)
		if err != nil {
			var validation *patient.ValidationError
			if errors.As(err, &validation) {
				writeError(w, http.StatusBadRequest, "validation_error", validation.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, p)
	}
}

func getPatientHandler(patients *patient.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		p, err := patients.Get(id)
		if err != nil {
			if errors.Is(err, patient.ErrPatientNotFound) {
				writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}
