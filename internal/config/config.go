package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                   string        // dev, prod
	HTTPPort              string        // default 8080
	LogLevel              string        // debug, info, warn, error
	ShutdownTimeout       time.Duration // graceful shutdown timeout
	SeedFile              string        // optional JSON seed file; built-in fixtures when empty
	SeedExtraDoctors      int           // generated doctors added on top of the fixtures
	SeedExtraPolicies     int           // generated policies added on top of the fixtures
	EligibilityMaxRetries int           // attempts against a transient policy source
	EligibilityRetryDelay time.Duration // pause between attempts
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:                   getEnv("APP_ENV", "dev"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout:       getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		SeedFile:              os.Getenv("SEED_FILE"),
		SeedExtraDoctors:      getInt("SEED_EXTRA_DOCTORS", 0),
		SeedExtraPolicies:     getInt("SEED_EXTRA_POLICIES", 0),
		EligibilityMaxRetries: getInt("ELIGIBILITY_MAX_RETRIES", 3),
		EligibilityRetryDelay: getDuration("ELIGIBILITY_RETRY_DELAY", 200*time.Millisecond),
	}

	if cfg.EligibilityMaxRetries < 1 {
		return Config{}, fmt.Errorf("ELIGIBILITY_MAX_RETRIES must be at least 1, got %d", cfg.EligibilityMaxRetries)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		fmt.Fprintf(os.Stderr, "invalid integer for %s=%q, using default %d\n", key, v, def)
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		fmt.Fprintf(os.Stderr, "invalid duration for %s=%q, using default %s\n", key, v, def)
	}
	return def
}
