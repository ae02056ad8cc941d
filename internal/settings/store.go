// Package settings owns the durable agenda configuration: the weekly
// working-hours schedule and the block list. Both live in memory, are read
// once at startup and written back whole after every mutation as two named
// JSON records.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The two record names. Block dates serialize as ISO date strings inside
// the payload.
const (
	ScheduleKey = "agenda:schedule"
	BlocksKey   = "agenda:blocks"
)

var ErrRecordNotFound = errors.New("settings record not found")

// Store is durable key-value storage for named settings records.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

// PgStore keeps settings records in a single Postgres table.
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// EnsureSchema creates the settings table when missing.
func (s *PgStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS agenda_settings (
			key        text PRIMARY KEY,
			value      jsonb NOT NULL,
			updated_at timestamptz NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure settings schema: %w", err)
	}
	return nil
}

func (s *PgStore) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT value FROM agenda_settings WHERE key = $1
	`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("load settings record %s: %w", key, err)
	}
	return payload, nil
}

func (s *PgStore) Save(ctx context.Context, key string, payload []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO agenda_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, payload, time.Now())
	if err != nil {
		return fmt.Errorf("save settings record %s: %w", key, err)
	}
	return nil
}

// MemoryStore is the storage-less fallback for tests and dev runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.records[key]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return payload, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = append([]byte(nil), payload...)
	return nil
}
