package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BME310-2025-Spring-project/group1/internal/scheduling"
)

type SimConfig struct {
	APIBaseURL string
	Duration   time.Duration
	Workers    int
	Days       int
	PatientID  string
	InsureID   string
}

type doctorRecord struct {
	DoctorID string `json:"doctor_id"`
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, success bool, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else if conflict {
		atomic.AddInt64(&om.Conflict, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]

	p50Idx := len(latencies) * 50 / 100
	if p50Idx >= len(latencies) {
		p50Idx = len(latencies) - 1
	}
	p50 = latencies[p50Idx]

	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]

	return avg, min, max, p50, p95
}

func loadSimConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL: getEnv("SIM_API_URL", "http://127.0.0.1:8080"),
		Duration:   10 * time.Second,
		Workers:    8,
		Days:       14,
		PatientID:  getEnv("SIM_PATIENT_ID", "P123"),
		InsureID:   getEnv("SIM_INSURANCE_ID", "INS456"),
	}
	if v := os.Getenv("SIM_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Duration = d
		}
	}
	if v := os.Getenv("SIM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("SIM_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Days = n
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := loadSimConfig()
	log.Printf("simulate starting: url=%s workers=%d duration=%s", cfg.APIBaseURL, cfg.Workers, cfg.Duration)

	client := &http.Client{Timeout: 5 * time.Second}

	doctors, err := fetchDoctors(client, cfg.APIBaseURL)
	if err != nil {
		log.Fatalf("fetch doctors: %v", err)
	}
	if len(doctors) == 0 {
		log.Fatal("no doctors returned by the API")
	}
	log.Printf("loaded %d doctors", len(doctors))

	slots := scheduling.SlotTemplate()
	metrics := &OperationMetrics{}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))
			for ctx.Err() == nil {
				doctor := doctors[rng.Intn(len(doctors))]
				date := time.Now().AddDate(0, 0, rng.Intn(cfg.Days)+1).Format("2006-01-02")
				slot := slots[rng.Intn(len(slots))]
				bookOnce(client, cfg, metrics, doctor.DoctorID, date, slot)
			}
		}(i)
	}
	wg.Wait()

	printSummary(metrics)
}

func fetchDoctors(client *http.Client, baseURL string) ([]doctorRecord, error) {
	resp, err := client.Get(baseURL + "/api/doctors")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var doctors []doctorRecord
	if err := json.NewDecoder(resp.Body).Decode(&doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func bookOnce(client *http.Client, cfg SimConfig, metrics *OperationMetrics, doctorID, date, slot string) {
	body, _ := json.Marshal(map[string]string{
		"patient_id":   cfg.PatientID,
		"insurance_id": cfg.InsureID,
		"doctor_id":    doctorID,
		"date":         date,
		"time":         slot,
	})

	start := time.Now()
	resp, err := client.Post(cfg.APIBaseURL+"/api/appointments", "application/json", bytes.NewReader(body))
	latency := time.Since(start)
	if err != nil {
		metrics.Record(latency, false, false)
		return
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusCreated:
		metrics.Record(latency, true, false)
	case http.StatusConflict:
		metrics.Record(latency, false, true)
	default:
		metrics.Record(latency, false, false)
	}
}

func printSummary(metrics *OperationMetrics) {
	avg, min, max, p50, p95 := metrics.Stats()
	fmt.Println("---- booking simulation summary ----")
	fmt.Printf("total=%d success=%d conflict=%d error=%d\n",
		atomic.LoadInt64(&metrics.Total),
		atomic.LoadInt64(&metrics.Success),
		atomic.LoadInt64(&metrics.Conflict),
		atomic.LoadInt64(&metrics.Error),
	)
	fmt.Printf("latency avg=%s min=%s max=%s p50=%s p95=%s\n", avg, min, max, p50, p95)
}
