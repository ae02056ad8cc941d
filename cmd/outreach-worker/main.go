package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicware/practice-scheduler/internal/config"
)

// outreach-worker periodically polls the scheduler for patients who are due
// or overdue and not yet booked, and surfaces them as a call list for the
// front desk. It is read-only; it never books on anyone's behalf.

type outreachRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Status    string `json:"status"`
	Urgency   string `json:"urgency"`
	LastVisit string `json:"last_visit"`
}

type outreachMetrics struct {
	TotalPatients    int            `json:"total_patients"`
	ByUrgency        map[string]int `json:"by_urgency"`
	UnbookedPatients int            `json:"unbooked_patients"`
}

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "outreach-worker").Logger()
	log.Info().Msg("outreach-worker starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	baseURL := os.Getenv("OUTREACH_API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.HTTPPort
	}
	log.Info().Str("env", cfg.Env).Str("api", baseURL).Dur("interval", cfg.OutreachInterval).Msg("configuration loaded")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: 10 * time.Second}

	runOnce(rootCtx, client, baseURL, log)

	ticker := time.NewTicker(cfg.OutreachInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Info().Msg("shutdown signal received, stopping outreach worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, client, baseURL, log)
		}
	}
}

func runOnce(ctx context.Context, client *http.Client, baseURL string, log zerolog.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()

	var metrics outreachMetrics
	if err := fetch(runCtx, client, baseURL+"/patients/outreach/metrics", &metrics); err != nil {
		log.Error().Err(err).Msg("outreach metrics fetch failed")
		return
	}

	var due struct {
		Patients []outreachRow `json:"patients"`
	}
	url := baseURL + "/patients/outreach?urgency=Now,Late&booked=unbooked"
	if err := fetch(runCtx, client, url, &due); err != nil {
		log.Error().Err(err).Msg("outreach list fetch failed")
		return
	}

	for _, p := range due.Patients {
		log.Info().
			Int64("patient_id", p.ID).
			Str("name", p.Name).
			Str("phone", p.Phone).
			Str("urgency", p.Urgency).
			Str("last_visit", p.LastVisit).
			Msg("patient due for outreach")
	}

	log.Info().
		Int("total_patients", metrics.TotalPatients).
		Int("unbooked", metrics.UnbookedPatients).
		Int("call_list", len(due.Patients)).
		Dur("took", time.Since(start)).
		Msg("outreach run complete")
}

func fetch(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
