package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/BME310-2025-Spring-project/group1/internal/directory"
	"github.com/BME310-2025-Spring-project/group1/internal/insurance"
	"github.com/BME310-2025-Spring-project/group1/internal/patient"
	"github.com/BME310-2025-Spring-project/group1/internal/scheduling"
)

type RouterConfig struct {
	Booking      *scheduling.Service
	Doctors      *directory.Store
	Policies     *insurance.Store
	Checker      *insurance.Checker
	Appointments *scheduling.Store
	Patients     *patient.Store
	Log          *zap.Logger
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health endpoints
	health := NewHealthHandler(cfg.Doctors, cfg.Policies, cfg.Appointments, cfg.Patients, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Scheduling endpoints
	r.Get("/api/doctors", listDoctorsHandler(cfg.Doctors))
	r.Get("/api/availability", availabilityHandler(cfg.Booking))
	r.Post("/api/appointments", bookAppointmentHandler(cfg.Booking))
	r.Get("/api/appointments/{id}", getAppointmentHandler(cfg.Booking))

	// Insurance and registration endpoints
	r.Get("/api/insurance/eligibility", eligibilityHandler(cfg.Checker))
	r.Post("/api/patients", registerPatientHandler(cfg.Patients))
	r.Get("/api/patients/{id}", getPatientHandler(cfg.Patients))

	return r
}
