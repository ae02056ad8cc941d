package settings

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	redisclient "github.com/clinicware/practice-scheduler/internal/redis"
	"github.com/clinicware/practice-scheduler/internal/schedule"
)

// Agenda is the injected state container the resolver and handlers read
// from. Reads return snapshots; writes replace whole records, persist them
// and broadcast a change event so sibling instances replace theirs too.
type Agenda struct {
	mu     sync.RWMutex
	week   schedule.WeeklySchedule
	blocks schedule.Registry

	store    Store
	notifier redisclient.Notifier
	log      zerolog.Logger
}

func NewAgenda(store Store, notifier redisclient.Notifier, log zerolog.Logger) *Agenda {
	return &Agenda{
		week:     schedule.DefaultWeeklySchedule(),
		store:    store,
		notifier: notifier,
		log:      log,
	}
}

// Load reads both records from durable storage. Missing records keep the
// defaults; malformed payloads are logged and the defaults stand — a broken
// record never crashes startup.
func (a *Agenda) Load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if payload, err := a.store.Load(ctx, ScheduleKey); err == nil {
		var week schedule.WeeklySchedule
		if jsonErr := json.Unmarshal(payload, &week); jsonErr != nil {
			a.log.Error().Err(jsonErr).Str("key", ScheduleKey).Msg("malformed schedule record, keeping defaults")
		} else {
			a.week = week
		}
	} else if !errors.Is(err, ErrRecordNotFound) {
		a.log.Error().Err(err).Str("key", ScheduleKey).Msg("load schedule record failed, keeping defaults")
	}

	if payload, err := a.store.Load(ctx, BlocksKey); err == nil {
		var blocks schedule.Registry
		if jsonErr := json.Unmarshal(payload, &blocks); jsonErr != nil {
			a.log.Error().Err(jsonErr).Str("key", BlocksKey).Msg("malformed blocks record, keeping defaults")
		} else {
			a.blocks = blocks
		}
	} else if !errors.Is(err, ErrRecordNotFound) {
		a.log.Error().Err(err).Str("key", BlocksKey).Msg("load blocks record failed, keeping defaults")
	}
}

// WeeklySchedule returns a snapshot of the working-hours configuration.
func (a *Agenda) WeeklySchedule() schedule.WeeklySchedule {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.week.Clone()
}

// Blocks returns a snapshot of the block registry.
func (a *Agenda) Blocks() schedule.Registry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.blocks.Clone()
}

// ReplaceWeek swaps in a whole new weekly schedule after validation.
func (a *Agenda) ReplaceWeek(ctx context.Context, week schedule.WeeklySchedule) error {
	if err := week.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	a.week = week
	a.mu.Unlock()
	a.persistSchedule(ctx)
	return nil
}

// SetDayActive flips a weekday's active flag.
func (a *Agenda) SetDayActive(ctx context.Context, w schedule.Weekday, active bool) error {
	return a.mutateWeek(ctx, func(week schedule.WeeklySchedule) schedule.WeeklySchedule {
		return week.SetDayActive(w, active)
	}, w)
}

// SetDayHours replaces a weekday's open and close times.
func (a *Agenda) SetDayHours(ctx context.Context, w schedule.Weekday, open, close schedule.TimeOfDay) error {
	return a.mutateWeek(ctx, func(week schedule.WeeklySchedule) schedule.WeeklySchedule {
		return week.SetDayHours(w, open, close)
	}, w)
}

// AddBreak appends a break with a fresh id and returns it.
func (a *Agenda) AddBreak(ctx context.Context, w schedule.Weekday, start, end schedule.TimeOfDay) (schedule.Break, error) {
	b := schedule.Break{ID: uuid.NewString(), Start: start, End: end}
	err := a.mutateWeek(ctx, func(week schedule.WeeklySchedule) schedule.WeeklySchedule {
		return week.AddBreak(w, b)
	}, w)
	if err != nil {
		return schedule.Break{}, err
	}
	return b, nil
}

// RemoveBreak drops a break by id; absent ids are a no-op.
func (a *Agenda) RemoveBreak(ctx context.Context, w schedule.Weekday, breakID string) error {
	return a.mutateWeek(ctx, func(week schedule.WeeklySchedule) schedule.WeeklySchedule {
		return week.RemoveBreak(w, breakID)
	}, w)
}

// UpdateBreak replaces one endpoint of a break.
func (a *Agenda) UpdateBreak(ctx context.Context, w schedule.Weekday, breakID, field string, value schedule.TimeOfDay) error {
	return a.mutateWeek(ctx, func(week schedule.WeeklySchedule) schedule.WeeklySchedule {
		return week.UpdateBreak(w, breakID, field, value)
	}, w)
}

// mutateWeek applies fn to a copy, validates the touched day and commits.
// The mutation helpers themselves stay loose; this is the commit point the
// validation contract names.
func (a *Agenda) mutateWeek(ctx context.Context, fn func(schedule.WeeklySchedule) schedule.WeeklySchedule, touched schedule.Weekday) error {
	a.mu.Lock()
	next := fn(a.week)
	if err := schedule.ValidateDay(next.Day(touched)); err != nil {
		a.mu.Unlock()
		return err
	}
	a.week = next
	a.mu.Unlock()
	a.persistSchedule(ctx)
	return nil
}

// AddBlock validates, stores and broadcasts a new block entry.
func (a *Agenda) AddBlock(ctx context.Context, e schedule.BlockEntry) (schedule.BlockEntry, error) {
	a.mu.Lock()
	next, stored, err := a.blocks.Add(e)
	if err != nil {
		a.mu.Unlock()
		return schedule.BlockEntry{}, err
	}
	a.blocks = next
	a.mu.Unlock()
	a.persistBlocks(ctx)
	return stored, nil
}

// RemoveBlock drops a block by id; absent ids are a no-op but still persist,
// matching write-on-every-mutation.
func (a *Agenda) RemoveBlock(ctx context.Context, id string) {
	a.mu.Lock()
	a.blocks = a.blocks.Remove(id)
	a.mu.Unlock()
	a.persistBlocks(ctx)
}

// ApplyExternal replaces an in-memory record with the payload from a
// cross-instance change event, wholesale, last writer wins. Malformed
// payloads are logged and ignored.
func (a *Agenda) ApplyExternal(ev redisclient.ChangeEvent) {
	switch ev.Key {
	case ScheduleKey:
		var week schedule.WeeklySchedule
		if err := json.Unmarshal(ev.Payload, &week); err != nil {
			a.log.Warn().Err(err).Str("key", ev.Key).Msg("ignoring malformed external schedule update")
			return
		}
		a.mu.Lock()
		a.week = week
		a.mu.Unlock()
	case BlocksKey:
		var blocks schedule.Registry
		if err := json.Unmarshal(ev.Payload, &blocks); err != nil {
			a.log.Warn().Err(err).Str("key", ev.Key).Msg("ignoring malformed external blocks update")
			return
		}
		a.mu.Lock()
		a.blocks = blocks
		a.mu.Unlock()
	default:
		a.log.Debug().Str("key", ev.Key).Msg("ignoring change event for unknown record")
	}
}

// persistSchedule and persistBlocks are best effort: the in-memory state is
// already committed, a storage or broadcast failure is logged, not unwound.
func (a *Agenda) persistSchedule(ctx context.Context) {
	a.mu.RLock()
	payload, err := json.Marshal(a.week)
	a.mu.RUnlock()
	if err != nil {
		a.log.Error().Err(err).Msg("marshal schedule record")
		return
	}
	a.persist(ctx, ScheduleKey, payload)
}

func (a *Agenda) persistBlocks(ctx context.Context) {
	a.mu.RLock()
	payload, err := json.Marshal(a.blocks)
	a.mu.RUnlock()
	if err != nil {
		a.log.Error().Err(err).Msg("marshal blocks record")
		return
	}
	a.persist(ctx, BlocksKey, payload)
}

func (a *Agenda) persist(ctx context.Context, key string, payload []byte) {
	if err := a.store.Save(ctx, key, payload); err != nil {
		a.log.Error().Err(err).Str("key", key).Msg("persist settings record failed")
	}
	if err := a.notifier.Publish(ctx, redisclient.ChangeEvent{Key: key, Payload: payload}); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("broadcast settings change failed")
	}
}
