package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/clinicware/practice-scheduler/internal/appointment"
	"github.com/clinicware/practice-scheduler/internal/patient"
	"github.com/clinicware/practice-scheduler/internal/schedule"
	"github.com/clinicware/practice-scheduler/internal/settings"
)

type RouterConfig struct {
	Agenda       *settings.Agenda
	Resolver     *schedule.Resolver
	Service      *appointment.Service
	Appointments *appointment.Store
	Roster       *patient.Roster
	PatientCfg   patient.Config
	SlotMinutes  int
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
	Log          zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/schedule", func(r chi.Router) {
		r.Get("/", getScheduleHandler(cfg.Agenda))
		r.Put("/", replaceScheduleHandler(cfg.Agenda))
		r.Patch("/days/{weekday}", updateDayHandler(cfg.Agenda))
		r.Post("/days/{weekday}/breaks", createBreakHandler(cfg.Agenda))
		r.Patch("/days/{weekday}/breaks/{breakID}", updateBreakHandler(cfg.Agenda))
		r.Delete("/days/{weekday}/breaks/{breakID}", deleteBreakHandler(cfg.Agenda))
	})

	r.Route("/blocks", func(r chi.Router) {
		r.Get("/", listBlocksHandler(cfg.Agenda))
		r.Post("/", createBlockHandler(cfg.Agenda))
		r.Delete("/{id}", deleteBlockHandler(cfg.Agenda))
	})

	r.Get("/slots", listSlotsHandler(cfg.Resolver, cfg.SlotMinutes))
	r.Get("/availability", availabilityHandler(cfg.Resolver))

	r.Route("/appointments", func(r chi.Router) {
		r.Post("/", bookAppointmentHandler(cfg.Service, cfg.Roster))
		r.Get("/", listAppointmentsHandler(cfg.Appointments))
		r.Get("/day-stats", dayStatsHandler(cfg.Appointments))
		r.Get("/{id}", getAppointmentHandler(cfg.Appointments))
		r.Put("/{id}", replaceAppointmentHandler(cfg.Appointments))
		r.Delete("/{id}", deleteAppointmentHandler(cfg.Service))
		r.Patch("/{id}/status", updateStatusHandler(cfg.Service))
		r.Post("/{id}/move", moveAppointmentHandler(cfg.Service))
		r.Post("/{id}/resize", resizeAppointmentHandler(cfg.Service))
	})

	r.Route("/patients", func(r chi.Router) {
		r.Get("/", listPatientsHandler(cfg.Roster))
		r.Post("/", createPatientHandler(cfg.Roster))
		r.Post("/{id}/visits", recordVisitHandler(cfg.Roster))
		r.Get("/outreach", outreachHandler(cfg.Roster, cfg.Appointments, cfg.PatientCfg))
		r.Get("/outreach/metrics", outreachMetricsHandler(cfg.Roster, cfg.Appointments, cfg.PatientCfg))
	})

	return r
}
