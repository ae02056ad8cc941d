package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicware/practice-scheduler/internal/api"
	"github.com/clinicware/practice-scheduler/internal/appointment"
	"github.com/clinicware/practice-scheduler/internal/config"
	"github.com/clinicware/practice-scheduler/internal/db"
	"github.com/clinicware/practice-scheduler/internal/patient"
	redisclient "github.com/clinicware/practice-scheduler/internal/redis"
	"github.com/clinicware/practice-scheduler/internal/schedule"
	"github.com/clinicware/practice-scheduler/internal/settings"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const version = "0.1.0"

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "api-server").Logger()
	log.Info().Str("version", version).Msg("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}
	log.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("configuration loaded")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres is optional: without it the agenda configuration lives only
	// in memory and is lost on restart.
	var pgPool *pgxpool.Pool
	var store settings.Store = settings.NewMemoryStore()
	if cfg.PostgresDSN != "" {
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pgPool, err = db.Connect(pgCtx, cfg.PostgresDSN)
		cancelPg()
		if err != nil {
			log.Fatal().Err(err).Msg("postgres connection error")
		}
		defer pgPool.Close()

		pgStore := settings.NewPgStore(pgPool)
		if err := pgStore.EnsureSchema(rootCtx); err != nil {
			log.Fatal().Err(err).Msg("settings schema error")
		}
		store = pgStore
		log.Info().Msg("connected to Postgres")
	} else {
		log.Warn().Msg("POSTGRES_DSN not set, agenda settings are in-memory only")
	}

	// Redis is optional too: without it bookings lose the cross-instance
	// date lock and settings changes stop propagating to sibling instances.
	var rdb *redis.Client
	var locker redisclient.Locker = redisclient.NoopLocker{}
	var notifier redisclient.Notifier = redisclient.NoopNotifier{}
	if cfg.RedisAddr != "" {
		rdb, err = redisclient.NewClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection error")
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("error closing redis")
			}
		}()
		locker = redisclient.NewRedisDateLocker(rdb, cfg.LockTTL)
		notifier = redisclient.NewRedisNotifier(rdb, log)
		log.Info().Msg("connected to Redis")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, running single-instance without locks or settings sync")
	}

	agenda := settings.NewAgenda(store, notifier, log)
	agenda.Load(rootCtx)
	notifier.Subscribe(rootCtx, agenda.ApplyExternal)

	resolver := schedule.NewResolver(agenda)
	appts := appointment.NewStore()
	roster := patient.NewRoster()
	svc := appointment.NewService(resolver, appts, locker, log)

	router := api.NewRouter(api.RouterConfig{
		Agenda:       agenda,
		Resolver:     resolver,
		Service:      svc,
		Appointments: appts,
		Roster:       roster,
		PatientCfg:   patient.DefaultConfig(),
		SlotMinutes:  cfg.SlotMinutes,
		PgPool:       pgPool,
		Redis:        rdb,
		Env:          cfg.Env,
		Version:      version,
		Log:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("api-server stopped")
}
