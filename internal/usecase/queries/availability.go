package queries

import (
	"context"
	"log/slog"
	"time"

	"showtime-booking/internal/domain/availability"
	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/pkg/clock"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability.go -package=queriesmock

// Snapshot is what the cache holds: the computed days of a range and the
// bookings they were computed from. Past-ness is applied on read.
type Snapshot struct {
	Range    booking.DateRange
	Days     []availability.DayRecord
	Bookings []*booking.Booking
}

// AvailabilityCache hands out a generation before each refill. Put drops
// the value if a relevant invalidation happened after that generation.
type AvailabilityCache interface {
	Get(key availability.CacheKey) (Snapshot, bool)
	Generation() uint64
	Put(key availability.CacheKey, value Snapshot, ttl time.Duration, gen uint64) bool
}

type AvailabilityQueries interface {
	CheckRange(ctx context.Context, params RangeCheckParams) (*RangeCheckResult, error)
	CheckSlot(ctx context.Context, params SlotCheckParams) (*SlotCheckResult, error)
}

type Options struct {
	CacheTTL     time.Duration
	MaxRangeDays int
}

type availabilityQueriesImpl struct {
	engine *availability.Engine
	store  shared.BookingReadStore
	cache  AvailabilityCache
	clock  clock.Clock
	opts   Options
}

func NewAvailabilityQueries(
	engine *availability.Engine,
	store shared.BookingReadStore,
	cache AvailabilityCache,
	clock clock.Clock,
	opts Options,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		engine: engine,
		store:  store,
		cache:  cache,
		clock:  clock,
		opts:   opts,
	}
}

func (q *availabilityQueriesImpl) CheckRange(ctx context.Context, params RangeCheckParams) (*RangeCheckResult, error) {
	loc := q.engine.Location()

	start, err := booking.ParseDate(params.StartDate, loc)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}
	end, err := booking.ParseDate(params.EndDate, loc)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}
	if !start.Before(end) {
		return nil, errs.Mark(errs.Newf("start date %s must be before end date %s", params.StartDate, params.EndDate), errs.ErrInvalidRange)
	}
	rng, err := booking.NewDateRange(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRange)
	}
	if q.opts.MaxRangeDays > 0 && rng.Days() > q.opts.MaxRangeDays {
		return nil, errs.Mark(errs.Newf("range of %d days exceeds the maximum of %d", rng.Days(), q.opts.MaxRangeDays), errs.ErrInvalidInput)
	}
	services, err := ParseServices(params.Services)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	today := q.engine.Today(now)

	var days []availability.DayRecord
	if rng.End().Before(today) {
		// Entirely past: nothing stored can change the answer.
		days = pastDays(rng)
	} else {
		snap, err := q.snapshot(ctx, rng, services)
		if err != nil {
			return nil, err
		}
		days = snap.Days
	}

	result := &RangeCheckResult{Days: make([]DayAvailability, 0, len(days))}
	for _, rec := range days {
		day := q.dayAvailability(rec, now, params.IncludeBookings)
		if day.IsAvailable {
			result.AvailableDays++
		}
		if len(rec.ConfirmedBookings()) > 0 {
			result.BookedDays++
		}
		result.Days = append(result.Days, day)
	}
	result.TotalDays = len(result.Days)
	return result, nil
}

func pastDays(rng booking.DateRange) []availability.DayRecord {
	dates := rng.Dates()
	out := make([]availability.DayRecord, len(dates))
	for i, d := range dates {
		out[i] = availability.DayRecord{Date: d}
	}
	return out
}

func (q *availabilityQueriesImpl) dayAvailability(rec availability.DayRecord, now time.Time, includeBookings bool) DayAvailability {
	day := DayAvailability{Date: rec.Date}
	if includeBookings {
		if b := rec.PrimaryBooking(); b != nil {
			day.Booking = NewBookingView(b)
		}
	}

	switch {
	case q.engine.IsPastDate(rec.Date, now):
		day.BlockedReason = reason(availability.ReasonPastDate)
	case !rec.Open:
		day.BlockedReason = reason(availability.ReasonClosed)
	default:
		day.AvailableSlots = availableFrom(rec, now)
		if day.AvailableSlots == 0 {
			day.BlockedReason = reason(availability.ReasonFullyBooked)
		} else {
			day.IsAvailable = true
		}
	}
	return day
}

// availableFrom counts available slots that have not started yet.
func availableFrom(rec availability.DayRecord, now time.Time) int {
	n := 0
	for _, s := range rec.Slots {
		if s.Available && !s.Slot.Start().Before(now) {
			n++
		}
	}
	return n
}

func reason(s string) *string {
	return &s
}

func (q *availabilityQueriesImpl) CheckSlot(ctx context.Context, params SlotCheckParams) (*SlotCheckResult, error) {
	services, err := ParseRequiredServices(params.Services)
	if err != nil {
		return nil, err
	}
	date, slot, err := ParseSlot(q.engine.Location(), params.Date, params.StartTime, params.EndTime)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	if q.engine.IsPastDate(date, now) || slot.Start().Before(now) {
		ev, err := q.engine.Evaluate(ctx, slot, nil, now, uuid.Nil)
		if err != nil {
			return nil, err
		}
		return NewSlotCheckResult(date, ev), nil
	}

	snap, err := q.snapshot(ctx, q.engine.Window(date), services)
	if err != nil {
		return nil, err
	}

	ev, err := q.engine.Evaluate(ctx, slot, snap.Bookings, now, uuid.Nil)
	if err != nil {
		return nil, err
	}
	return NewSlotCheckResult(date, ev), nil
}

// snapshot serves rng from the cache or computes and stores it.
func (q *availabilityQueriesImpl) snapshot(ctx context.Context, rng booking.DateRange, services booking.ServiceSet) (Snapshot, error) {
	key := availability.NewCacheKey(rng, services)
	if snap, ok := q.cache.Get(key); ok {
		return snap, nil
	}

	gen := q.cache.Generation()
	bookings, err := q.store.BookingsOverlapping(ctx, rng)
	if err != nil {
		slog.ErrorContext(ctx, "availability store read failed",
			"range", rng.String(),
			"error", err.Error())
		return Snapshot{}, errs.Mark(err, errs.ErrStoreUnavailable)
	}

	days, err := q.engine.BuildDays(ctx, rng, bookings)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Range: rng, Days: days, Bookings: bookings}
	q.cache.Put(key, snap, q.opts.CacheTTL, gen)
	return snap, nil
}
