package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// simulate hammers the booking endpoint from many workers aiming at the same
// day, then audits the result: however many workers raced, the day must come
// out with zero overlapping non-cancelled appointments.

type SimConfig struct {
	APIBaseURL string
	Date       string
	Workers    int
	Attempts   int
}

type OperationMetrics struct {
	Total     int64
	Created   int64
	Conflict  int64
	Error     int64
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(latency time.Duration, status int, err error) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case err != nil:
		atomic.AddInt64(&om.Error, 1)
	case status == http.StatusCreated:
		atomic.AddInt64(&om.Created, 1)
	case status == http.StatusConflict:
		atomic.AddInt64(&om.Conflict, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.latencies = append(om.latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.latencies) == 0 {
		return 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.latencies))
	copy(latencies, om.latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	avg = sum / time.Duration(len(latencies))
	p50 = latencies[len(latencies)*50/100]
	p95 = latencies[min(len(latencies)*95/100, len(latencies)-1)]
	return avg, p50, p95
}

type bookedAppt struct {
	ID              int64  `json:"id"`
	Start           string `json:"start"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
}

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "simulate").Logger()
	log.Info().Msg("simulator starting")

	cfg := loadConfig()
	log.Info().
		Str("date", cfg.Date).
		Int("workers", cfg.Workers).
		Int("attempts", cfg.Attempts).
		Msg("configuration")

	client := &http.Client{Timeout: 10 * time.Second}
	starts := []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00"}

	var metrics OperationMetrics
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))
			for a := 0; a < cfg.Attempts; a++ {
				book(ctx, client, cfg, starts[rng.Intn(len(starts))], &metrics)
			}
		}(i)
	}
	wg.Wait()

	printReport(cfg, &metrics)

	overlaps, total, err := auditDay(ctx, client, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("audit failed")
	}
	fmt.Printf("Audit: %d appointments on %s, %d overlapping pairs\n", total, cfg.Date, overlaps)
	if overlaps > 0 {
		log.Fatal().Int("overlaps", overlaps).Msg("double booking detected")
	}
	log.Info().Msg("no double bookings, booking protocol held under contention")
}

func book(ctx context.Context, client *http.Client, cfg SimConfig, start string, metrics *OperationMetrics) {
	body, _ := json.Marshal(map[string]any{
		"patient_name":     fmt.Sprintf("sim-%d", rand.Int63()),
		"date":             cfg.Date,
		"start":            start,
		"duration_minutes": 30,
	})

	began := time.Now()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, cfg.APIBaseURL+"/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	latency := time.Since(began)

	status := 0
	if err == nil {
		status = resp.StatusCode
		resp.Body.Close()
	}
	metrics.Record(latency, status, err)
}

// auditDay fetches the day's appointments and counts pairwise overlaps among
// the non-cancelled ones.
func auditDay(ctx context.Context, client *http.Client, cfg SimConfig) (overlaps, total int, err error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, cfg.APIBaseURL+"/appointments?date="+cfg.Date, nil)
	resp, err := client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	var payload struct {
		Appointments []bookedAppt `json:"appointments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, err
	}

	var active []bookedAppt
	for _, a := range payload.Appointments {
		if a.Status != "cancelled" {
			active = append(active, a)
		}
	}

	for i := range active {
		for j := range active[:i] {
			si, sj := toMinutes(active[i].Start), toMinutes(active[j].Start)
			ei, ej := si+active[i].DurationMinutes, sj+active[j].DurationMinutes
			if si < ej && ei > sj {
				overlaps++
			}
		}
	}
	return overlaps, len(payload.Appointments), nil
}

func toMinutes(hhmm string) int {
	var h, m int
	fmt.Sscanf(hhmm, "%d:%d", &h, &m)
	return h*60 + m
}

func printReport(cfg SimConfig, metrics *OperationMetrics) {
	avg, p50, p95 := metrics.Stats()
	fmt.Println("SIMULATION REPORT")
	fmt.Printf("  Requests:  %d\n", atomic.LoadInt64(&metrics.Total))
	fmt.Printf("  Created:   %d\n", atomic.LoadInt64(&metrics.Created))
	fmt.Printf("  Conflicts: %d\n", atomic.LoadInt64(&metrics.Conflict))
	fmt.Printf("  Errors:    %d\n", atomic.LoadInt64(&metrics.Error))
	fmt.Printf("  Latency:   avg=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), p50.Round(time.Millisecond), p95.Round(time.Millisecond))
}

func loadConfig() SimConfig {
	// Next Monday keeps the target inside default working hours.
	date := time.Now()
	for date.Weekday() != time.Monday {
		date = date.AddDate(0, 0, 1)
	}

	return SimConfig{
		APIBaseURL: getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Date:       getEnv("SIM_DATE", date.Format("2006-01-02")),
		Workers:    getInt("SIM_WORKERS", 10),
		Attempts:   getInt("SIM_ATTEMPTS", 20),
	}
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
	}
	return def
}
