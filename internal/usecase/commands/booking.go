package commands

import (
	"context"
	"log/slog"
	"time"

	"showtime-booking/internal/domain/admission"
	"showtime-booking/internal/domain/availability"
	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/infra"
	"showtime-booking/internal/pkg/clock"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/pkg/metrics"
	"showtime-booking/internal/usecase/queries"
	"showtime-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

type CreateBookingInput struct {
	Date      string
	StartTime string
	EndTime   string
	Services  []string
	// ClientID identifies the requester for the admission gate.
	ClientID string
	// Admin bookings skip the gate and may set Status and the overrides.
	Admin            bool
	Status           string
	BufferMinutes    *int
	SetupLeadMinutes *int
}

type CreateBookingResult struct {
	Booking *queries.BookingView
	// Admission is nil when the gate was not consulted.
	Admission *admission.Decision
}

type UpdateStatusInput struct {
	ID     uuid.UUID
	Status string
}

type RescheduleInput struct {
	ID        uuid.UUID
	Date      string
	StartTime string
	EndTime   string
	// Services replace the current set when non-empty.
	Services []string
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
	UpdateStatus(ctx context.Context, in UpdateStatusInput) (*queries.BookingView, error)
	Reschedule(ctx context.Context, in RescheduleInput) (*queries.BookingView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	engine   *availability.Engine
	store    shared.BookingReadStore
	uow      shared.UnitOfWork
	gate     shared.AdmissionGate
	cache    shared.CacheInvalidator
	notifier shared.AvailabilityNotifier
	clock    clock.Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewBookingCommands(
	engine *availability.Engine,
	store shared.BookingReadStore,
	uow shared.UnitOfWork,
	gate shared.AdmissionGate,
	cache shared.CacheInvalidator,
	notifier shared.AvailabilityNotifier,
	clock clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) BookingCommands {
	if logger == nil {
		logger = slog.Default()
	}
	return &bookingCommandsImpl{
		engine:   engine,
		store:    store,
		uow:      uow,
		gate:     gate,
		cache:    cache,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
		metrics:  m,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	services, err := queries.ParseRequiredServices(in.Services)
	if err != nil {
		return nil, err
	}
	date, slot, err := queries.ParseSlot(c.engine.Location(), in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	status := booking.StatusPending
	var overrides booking.Overrides
	if in.Admin {
		if in.Status != "" {
			if status, err = booking.ParseStatus(in.Status); err != nil {
				return nil, errs.Mark(err, errs.ErrInvalidInput)
			}
		}
		overrides = booking.Overrides{BufferMinutes: in.BufferMinutes, SetupLeadMinutes: in.SetupLeadMinutes}
	}

	now := c.clock.Now()
	if err := c.rejectPast(date, slot, now); err != nil {
		return nil, err
	}

	result := &CreateBookingResult{}
	if !in.Admin && c.gate != nil && c.gate.Mode() != admission.ModeDisabled {
		decision, err := c.gate.Check(ctx, in.ClientID, admission.ActionCreateBooking)
		if err != nil {
			c.logger.WarnContext(ctx, "admission gate unavailable, allowing attempt",
				"client", in.ClientID,
				"error", err.Error())
			decision = admission.Open(c.gate.Limit())
		}
		if !decision.Allowed {
			return nil, &AdmissionDeniedError{Decision: decision}
		}
		result.Admission = &decision
	}

	b, err := booking.NewBooking(date, slot, services, status, overrides, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}

	if err := c.ensureAvailable(ctx, slot, now, uuid.Nil); err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, b)
	})
	if err != nil {
		return nil, c.writeFailed(ctx, err, slot, now, uuid.Nil, "failed to create booking")
	}

	c.logger.InfoContext(ctx, "booking created",
		"booking_id", b.ID().String(),
		"date", date.Format(booking.DateLayout),
		"status", b.Status().String())

	c.afterMutation(ctx, booking.NewEvent(booking.EventCreated, b, date, now), date)

	result.Booking = queries.NewBookingView(b)
	return result, nil
}

func (c *bookingCommandsImpl) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*queries.BookingView, error) {
	next, err := booking.ParseStatus(in.Status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}
	now := c.clock.Now()

	var updated *booking.Booking
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := c.load(ctx, tx, in.ID)
		if err != nil {
			return err
		}
		updated = b

		if next.IsHardConstraint() && !b.IsConfirmed() {
			if err := c.ensureNoHardConflict(ctx, b, now); err != nil {
				return err
			}
		}

		if err := b.ChangeStatus(next, now); err != nil {
			return errs.Mark(err, errs.ErrInvalidStatusTransition)
		}
		return tx.Bookings().Update(ctx, b)
	})
	if err != nil {
		if updated == nil {
			return nil, c.passThrough(ctx, err, "failed to update booking status")
		}
		return nil, c.writeFailed(ctx, err, updated.Interval(), now, updated.ID(), "failed to update booking status")
	}

	c.afterMutation(ctx, booking.NewEvent(booking.EventStatusChanged, updated, updated.EventDate(), now), updated.EventDate())
	return queries.NewBookingView(updated), nil
}

func (c *bookingCommandsImpl) Reschedule(ctx context.Context, in RescheduleInput) (*queries.BookingView, error) {
	services, err := queries.ParseServices(in.Services)
	if err != nil {
		return nil, err
	}
	date, slot, err := queries.ParseSlot(c.engine.Location(), in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	now := c.clock.Now()
	if err := c.rejectPast(date, slot, now); err != nil {
		return nil, err
	}

	var moved *booking.Booking
	var oldDate time.Time
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := c.load(ctx, tx, in.ID)
		if err != nil {
			return err
		}
		if !b.Status().Constrains() {
			return errs.Mark(booking.ErrNotReschedulable, errs.ErrInvalidStatusTransition)
		}

		if err := c.ensureAvailable(ctx, slot, now, b.ID()); err != nil {
			return err
		}

		oldDate = b.EventDate()
		if err := b.Reschedule(date, slot, services, now); err != nil {
			return errs.Mark(err, errs.ErrInvalidInput)
		}
		moved = b
		return tx.Bookings().Update(ctx, b)
	})
	if err != nil {
		if moved == nil {
			return nil, c.passThrough(ctx, err, "failed to reschedule booking")
		}
		return nil, c.writeFailed(ctx, err, slot, now, moved.ID(), "failed to reschedule booking")
	}

	c.afterMutation(ctx, booking.NewEvent(booking.EventRescheduled, moved, date, now), oldDate, date)
	return queries.NewBookingView(moved), nil
}

func (c *bookingCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	now := c.clock.Now()

	var deleted *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := c.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := tx.Bookings().Delete(ctx, id); err != nil {
			return err
		}
		deleted = b
		return nil
	})
	if err != nil {
		return c.passThrough(ctx, err, "failed to delete booking")
	}

	c.logger.InfoContext(ctx, "booking deleted", "booking_id", id.String())
	c.afterMutation(ctx, booking.NewEvent(booking.EventDeleted, deleted, deleted.EventDate(), now), deleted.EventDate())
	return nil
}

func (c *bookingCommandsImpl) load(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (c *bookingCommandsImpl) rejectPast(date time.Time, slot booking.Interval, now time.Time) error {
	if c.engine.IsPastDate(date, now) {
		return errs.Mark(errs.New(availability.ReasonPastDate), errs.ErrInvalidInput)
	}
	if slot.Start().Before(now) {
		return errs.Mark(errs.New(availability.ReasonPastTime), errs.ErrInvalidInput)
	}
	return nil
}

// evaluate reads the search window straight from the store. Writes never
// trust the cache.
func (c *bookingCommandsImpl) evaluate(ctx context.Context, slot booking.Interval, now time.Time, exclude uuid.UUID) (availability.Evaluation, error) {
	bookings, err := c.store.BookingsOverlapping(ctx, c.engine.Window(slot.Date()))
	if err != nil {
		return availability.Evaluation{}, errs.Mark(err, errs.ErrStoreUnavailable)
	}
	return c.engine.Evaluate(ctx, slot, bookings, now, exclude)
}

func (c *bookingCommandsImpl) ensureAvailable(ctx context.Context, slot booking.Interval, now time.Time, exclude uuid.UUID) error {
	ev, err := c.evaluate(ctx, slot, now, exclude)
	if err != nil {
		return err
	}
	if ev.Available {
		return nil
	}
	c.countConflict("check")
	return NewConflictError(queries.NewSlotCheckResult(slot.Date(), ev), errs.ErrSlotUnavailable)
}

// ensureNoHardConflict is the confirm-time check. Only confirmed bookings
// matter here; hours and past-ness were settled when the booking was made.
func (c *bookingCommandsImpl) ensureNoHardConflict(ctx context.Context, b *booking.Booking, now time.Time) error {
	bookings, err := c.store.BookingsOverlapping(ctx, c.engine.Window(b.EventDate()))
	if err != nil {
		return errs.Mark(err, errs.ErrStoreUnavailable)
	}
	conflicts := c.engine.Detector().ClassifyExcluding(b.Interval(), bookings, b.ID())
	if availability.IsAvailable(conflicts) {
		return nil
	}

	ev, err := c.engine.Evaluate(ctx, b.Interval(), bookings, now, b.ID())
	if err != nil {
		return err
	}
	ev.Available = false
	ev.Conflicts = conflicts
	if ev.BlockedReason == "" {
		ev.BlockedReason = availability.ReasonConflict
	}
	c.countConflict("check")
	return NewConflictError(queries.NewSlotCheckResult(b.EventDate(), ev), errs.ErrSlotUnavailable)
}

// writeFailed maps a failed unit of work. A constraint rejection means
// another writer claimed the slot after our check: reload and report what
// holds it now.
func (c *bookingCommandsImpl) writeFailed(ctx context.Context, err error, slot booking.Interval, now time.Time, exclude uuid.UUID, msg string) error {
	if !infra.IsConflict(err) {
		return c.passThrough(ctx, err, msg)
	}

	c.countConflict("persist")
	c.logger.WarnContext(ctx, "booking write rejected by constraint",
		"slot", slot.String(),
		"error", err.Error())

	ev, evalErr := c.evaluate(ctx, slot, now, exclude)
	if evalErr != nil {
		return NewConflictError(nil, errs.ErrSlotTaken)
	}
	return NewConflictError(queries.NewSlotCheckResult(slot.Date(), ev), errs.ErrSlotTaken)
}

// passThrough keeps classified errors and marks the rest as database failures.
func (c *bookingCommandsImpl) passThrough(ctx context.Context, err error, msg string) error {
	var conflict *ConflictError
	switch {
	case errs.As(err, &conflict):
		return err
	case errs.Is(err, errs.ErrBookingNotFound),
		errs.Is(err, errs.ErrInvalidInput),
		errs.Is(err, errs.ErrInvalidStatusTransition),
		errs.Is(err, errs.ErrStoreUnavailable):
		return err
	case errs.Is(err, context.Canceled), errs.Is(err, context.DeadlineExceeded):
		return err
	}
	c.logger.ErrorContext(ctx, msg, "error", err.Error())
	return errs.Mark(errs.Wrap(err, msg), errs.ErrDatabaseOperationFailed)
}

// afterMutation drops every cached range touching the affected dates, then
// tells subscribers. It runs before the command returns.
func (c *bookingCommandsImpl) afterMutation(ctx context.Context, event booking.Event, dates ...time.Time) {
	seen := make(map[string]bool, len(dates))
	unique := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		key := d.Format(booking.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, d)
	}

	for _, d := range unique {
		if c.cache != nil {
			c.cache.Invalidate(booking.SingleDay(d))
		}
	}
	if c.notifier == nil {
		return
	}
	for _, d := range unique {
		ev := event
		ev.Date = d.Format(booking.DateLayout)
		c.notifier.Notify(ctx, d, ev)
	}
}

func (c *bookingCommandsImpl) countConflict(stage string) {
	if c.metrics != nil {
		c.metrics.BookingConflicts.WithLabelValues(stage).Inc()
	}
}
