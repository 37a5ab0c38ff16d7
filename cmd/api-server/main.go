package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/BME310-2025-Spring-project/group1/internal/api"
	"github.com/BME310-2025-Spring-project/group1/internal/config"
	"github.com/BME310-2025-Spring-project/group1/internal/directory"
	"github.com/BME310-2025-Spring-project/group1/internal/insurance"
	"github.com/BME310-2025-Spring-project/group1/internal/logger"
	"github.com/BME310-2025-Spring-project/group1/internal/patient"
	"github.com/BME310-2025-Spring-project/group1/internal/scheduling"
	"github.com/BME310-2025-Spring-project/group1/internal/seed"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("api-server starting up",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("version", version),
	)

	data, err := loadSeedData(cfg)
	if err != nil {
		zlog.Fatal("seed data load error", zap.Error(err))
	}

	doctors := directory.NewStore(data.Doctors)
	policies := insurance.NewStore(data.Policies)
	appointments := scheduling.NewStore()
	patients := patient.NewStore()

	checker := insurance.NewChecker(policies, cfg.EligibilityMaxRetries, cfg.EligibilityRetryDelay, zlog)
	booking := scheduling.NewService(doctors, checker, appointments, zlog)

	zlog.Info("stores seeded",
		zap.Int("doctors", doctors.Count()),
		zap.Int("policies", policies.Count()),
	)

	router := api.NewRouter(api.RouterConfig{
		Booking:      booking,
		Doctors:      doctors,
		Policies:     policies,
		Checker:      checker,
		Appointments: appointments,
		Patients:     patients,
		Log:          zlog,
		Env:          cfg.Env,
		Version:      version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		zlog.Info("shutting down api-server")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}

// loadSeedData reads the seed file when configured, otherwise falls back to
// the built-in fixtures, optionally padded with generated records.
func loadSeedData(cfg config.Config) (seed.Data, error) {
	if cfg.SeedFile != "" {
		return seed.Load(cfg.SeedFile)
	}

	data := seed.Fixtures()
	if cfg.SeedExtraDoctors > 0 || cfg.SeedExtraPolicies > 0 {
		gofakeit.Seed(time.Now().UnixNano())
		data.Doctors = append(data.Doctors, seed.GenerateDoctors(cfg.SeedExtraDoctors)...)
		data.Policies = append(data.Policies, seed.GeneratePolicies(cfg.SeedExtraPolicies)...)
	}
	return data, nil
}
