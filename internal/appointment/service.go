package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	redisclient "github.com/clinicware/practice-scheduler/internal/redis"
	"github.com/clinicware/practice-scheduler/internal/schedule"
)

// RuleOverlap extends the resolver's rule set with the conflict detector's
// verdict, so every rejection a caller can receive names the rule it broke.
const RuleOverlap schedule.Rule = "overlap"

var (
	ErrNotFound      = errors.New("appointment not found")
	ErrDateBeingBooked = errors.New("another booking for this date is in flight, please retry")
)

// Intent is a proposed booking, move or resize, checked before any mutation.
type Intent struct {
	Date            schedule.DateStamp
	Start           schedule.TimeOfDay
	DurationMinutes int
	ExcludeID       int64 // skip this record in the overlap check; 0 for fresh bookings
}

// Service is the two-phase booking protocol around the store: validate an
// intent, then commit it only when validation passed, with both steps inside
// a per-date critical section. Callers never mutate first and revert later.
type Service struct {
	resolver *schedule.Resolver
	store    *Store
	locker   redisclient.Locker
	log      zerolog.Logger
}

func NewService(resolver *schedule.Resolver, store *Store, locker redisclient.Locker, log zerolog.Logger) *Service {
	return &Service{
		resolver: resolver,
		store:    store,
		locker:   locker,
		log:      log,
	}
}

// Validate checks an intent against business hours, blocks and existing
// appointments. It returns nil when the intent is bookable, otherwise a
// *schedule.Rejection naming the failed rule. It takes no lock; use it for
// advisory pre-checks. The mutating operations re-validate inside the lock.
func (s *Service) Validate(intent Intent) error {
	return s.validateLocked(intent)
}

func (s *Service) validateLocked(intent Intent) error {
	if intent.DurationMinutes <= 0 {
		return &schedule.FieldError{Field: "duration_minutes", Reason: "must be positive"}
	}
	if rej := s.resolver.ExplainRange(intent.Date, intent.Start, intent.DurationMinutes); rej != nil {
		return rej
	}
	candidate := Candidate{Date: intent.Date, Start: intent.Start, DurationMinutes: intent.DurationMinutes}
	if HasConflict(candidate, s.store.ByDate(intent.Date), intent.ExcludeID) {
		return &schedule.Rejection{Rule: RuleOverlap, Reason: "overlaps an existing appointment"}
	}
	return nil
}

// Book validates and commits a new appointment atomically for its date.
func (s *Service) Book(ctx context.Context, a Appointment) (Appointment, error) {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !ValidStatus(a.Status) {
		return Appointment{}, &schedule.FieldError{Field: "status", Reason: fmt.Sprintf("unknown status %q", a.Status)}
	}

	var booked Appointment
	err := s.locker.WithDateLock(ctx, string(a.Date), func(context.Context) error {
		intent := Intent{Date: a.Date, Start: a.Start, DurationMinutes: a.DurationMinutes}
		if err := s.validateLocked(intent); err != nil {
			return err
		}
		booked = s.store.Add(a)
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return Appointment{}, ErrDateBeingBooked
		}
		return Appointment{}, err
	}

	s.log.Info().
		Int64("appointment_id", booked.ID).
		Str("date", string(booked.Date)).
		Str("start", booked.Start.String()).
		Int("duration", booked.DurationMinutes).
		Msg("appointment booked")

	return booked, nil
}

// Move reschedules an appointment to a new date and start, keeping its
// duration. Validation excludes the appointment itself so it cannot collide
// with its own old span.
func (s *Service) Move(ctx context.Context, id int64, date schedule.DateStamp, start schedule.TimeOfDay) (Appointment, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return Appointment{}, ErrNotFound
	}

	var moved Appointment
	err := s.locker.WithDateLock(ctx, string(date), func(context.Context) error {
		intent := Intent{Date: date, Start: start, DurationMinutes: current.DurationMinutes, ExcludeID: id}
		if err := s.validateLocked(intent); err != nil {
			return err
		}
		moved = current
		moved.Date = date
		moved.Start = start
		s.store.Replace(moved)
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return Appointment{}, ErrDateBeingBooked
		}
		return Appointment{}, err
	}

	s.log.Info().
		Int64("appointment_id", id).
		Str("date", string(date)).
		Str("start", start.String()).
		Msg("appointment moved")

	return moved, nil
}

// Resize changes only the duration. The projected end is re-validated
// against hours, blocks and overlaps; a resize past closing time is
// rejected rather than silently accepted.
func (s *Service) Resize(ctx context.Context, id int64, durationMinutes int) (Appointment, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return Appointment{}, ErrNotFound
	}

	var resized Appointment
	err := s.locker.WithDateLock(ctx, string(current.Date), func(context.Context) error {
		intent := Intent{Date: current.Date, Start: current.Start, DurationMinutes: durationMinutes, ExcludeID: id}
		if err := s.validateLocked(intent); err != nil {
			return err
		}
		resized = current
		resized.DurationMinutes = durationMinutes
		s.store.Replace(resized)
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return Appointment{}, ErrDateBeingBooked
		}
		return Appointment{}, err
	}

	s.log.Info().
		Int64("appointment_id", id).
		Int("duration", durationMinutes).
		Msg("appointment resized")

	return resized, nil
}

// SetStatus transitions the status. No state-machine restriction applies
// and unknown ids are a silent no-op, matching the store contract.
func (s *Service) SetStatus(id int64, status Status) error {
	if !ValidStatus(status) {
		return &schedule.FieldError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}
	s.store.UpdateStatus(id, status)
	return nil
}

// Cancel marks the appointment cancelled, freeing its span for rebooking.
func (s *Service) Cancel(id int64) {
	s.store.UpdateStatus(id, StatusCancelled)
}

// Remove deletes the appointment outright; absent ids are a no-op.
func (s *Service) Remove(id int64) {
	s.store.Remove(id)
}
