package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
)

// seed fills a running api-server with fake patients, visit history and a
// first wave of appointments, so the outreach views and slot grids have
// something to show.

var locations = []string{
	"Downtown Clinic",
	"North Branch",
	"Home Visits",
	"Telehealth",
}

type seeder struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "seed").Logger()
	log.Info().Msg("seed starting")

	baseURL := os.Getenv("SEED_API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	patientCount := 40

	gofakeit.Seed(time.Now().UnixNano())

	s := &seeder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}

	ids, err := s.seedPatients(patientCount)
	if err != nil {
		log.Fatal().Err(err).Msg("seed patients")
	}
	if err := s.seedVisits(ids); err != nil {
		log.Fatal().Err(err).Msg("seed visits")
	}
	booked := s.seedAppointments(ids)

	log.Info().Int("patients", len(ids)).Int("appointments", booked).Msg("seed complete")
}

func (s *seeder) seedPatients(count int) ([]int64, error) {
	s.log.Info().Int("count", count).Msg("seeding patients")

	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		body := map[string]string{
			"name":     gofakeit.Name(),
			"phone":    gofakeit.Phone(),
			"location": locations[gofakeit.Number(0, len(locations)-1)],
		}
		var created struct {
			ID int64 `json:"id"`
		}
		if err := s.post("/patients", body, http.StatusCreated, &created); err != nil {
			return nil, err
		}
		ids = append(ids, created.ID)
	}
	return ids, nil
}

// seedVisits backdates a last visit for most patients, spread over the last
// four months so every status bucket is populated.
func (s *seeder) seedVisits(ids []int64) error {
	s.log.Info().Msg("seeding visit history")

	for _, id := range ids {
		if gofakeit.Number(0, 9) == 0 {
			continue // leave some patients with no history
		}
		daysAgo := gofakeit.Number(1, 120)
		date := time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02")
		path := fmt.Sprintf("/patients/%d/visits", id)
		if err := s.post(path, map[string]string{"date": date}, http.StatusNoContent, nil); err != nil {
			return err
		}
	}
	return nil
}

// seedAppointments books over the next two weeks through the public booking
// endpoint, so every record passed the availability and conflict rules.
// Conflicts are expected and simply skipped.
func (s *seeder) seedAppointments(ids []int64) int {
	s.log.Info().Msg("seeding appointments")

	starts := []string{"08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}
	kinds := []string{"visit", "followup", "other"}

	booked := 0
	for day := 1; day <= 14; day++ {
		date := time.Now().AddDate(0, 0, day).Format("2006-01-02")
		for _, start := range starts {
			if gofakeit.Number(0, 2) == 0 {
				continue
			}
			body := map[string]any{
				"patient_id":       ids[gofakeit.Number(0, len(ids)-1)],
				"date":             date,
				"start":            start,
				"duration_minutes": 60,
				"kind":             kinds[gofakeit.Number(0, len(kinds)-1)],
				"notify_patient":   gofakeit.Bool(),
				"billable":         gofakeit.Bool(),
			}
			err := s.post("/appointments", body, http.StatusCreated, nil)
			if err != nil {
				s.log.Debug().Err(err).Str("date", date).Str("start", start).Msg("booking skipped")
				continue
			}
			booked++
		}
	}
	return booked
}

func (s *seeder) post(path string, body any, wantStatus int, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := s.client.Post(s.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, raw)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
