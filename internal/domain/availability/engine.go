package availability

import (
	"context"
	"slices"
	"time"

	"showtime-booking/internal/domain/booking"

	"github.com/google/uuid"
)

const (
	ReasonPastDate     = "Past date"
	ReasonPastTime     = "Past time"
	ReasonClosed       = "Closed"
	ReasonOutsideHours = "Outside business hours"
	ReasonFullyBooked  = "Fully booked"
	ReasonConflict     = "Conflicts with a confirmed booking"
)

// Engine bundles the generator, detector and resolver under one policy and
// one business timezone.
type Engine struct {
	policy    Policy
	loc       *time.Location
	generator *SlotGenerator
	detector  *Detector
	resolver  *Resolver
}

func NewEngine(policy Policy, hours BusinessHours, loc *time.Location) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	gen := NewSlotGenerator(hours)
	det := NewDetector(policy)
	return &Engine{
		policy:    policy,
		loc:       loc,
		generator: gen,
		detector:  det,
		resolver:  NewResolver(gen, det, policy),
	}, nil
}

func (e *Engine) Policy() Policy {
	return e.policy
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

func (e *Engine) Generator() *SlotGenerator {
	return e.generator
}

func (e *Engine) Detector() *Detector {
	return e.detector
}

func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// Window is the span of days a check on date may read from the store:
// the date itself plus the resolver's search radius.
func (e *Engine) Window(date time.Time) booking.DateRange {
	return booking.Around(date, e.policy.SearchWindowDays)
}

func (e *Engine) Today(now time.Time) time.Time {
	return booking.DateOf(now.In(e.loc))
}

func (e *Engine) IsPastDate(date, now time.Time) bool {
	return booking.DateOf(date).Before(e.Today(now))
}

type Evaluation struct {
	Slot          booking.Interval
	Available     bool
	BlockedReason string
	Conflicts     []Conflict
	// Resolution is nil when the slot is available or the check short-circuited.
	Resolution *Resolution
}

// Evaluate decides whether slot can be booked given the bookings of its
// search window. Past slots short-circuit without conflicts or
// alternatives. exclude lets a booking be checked against everything but itself.
func (e *Engine) Evaluate(
	ctx context.Context,
	slot booking.Interval,
	bookings []*booking.Booking,
	now time.Time,
	exclude uuid.UUID,
) (Evaluation, error) {
	ev := Evaluation{Slot: slot}

	if e.IsPastDate(slot.Start(), now) {
		ev.BlockedReason = ReasonPastDate
		return ev, nil
	}
	if slot.Start().Before(now) {
		ev.BlockedReason = ReasonPastTime
		return ev, nil
	}

	ev.Conflicts = e.detector.ClassifyExcluding(slot, bookings, exclude)
	withinHours := e.generator.WithinHours(slot)
	ev.Available = withinHours && IsAvailable(ev.Conflicts)
	if ev.Available {
		return ev, nil
	}

	if withinHours {
		ev.BlockedReason = ReasonConflict
	} else {
		ev.BlockedReason = ReasonOutsideHours
	}

	res, err := e.resolver.SuggestAlternatives(ctx, slot, bookings, SearchWindow{
		Days:      e.policy.SearchWindowDays,
		NotBefore: now,
		Exclude:   exclude,
	})
	if err != nil {
		return Evaluation{}, err
	}
	ev.Resolution = &res
	return ev, nil
}

// BuildDays computes the per-slot availability of every day in rng. It
// checks ctx between days so wide ranges can be abandoned.
func (e *Engine) BuildDays(ctx context.Context, rng booking.DateRange, bookings []*booking.Booking) ([]DayRecord, error) {
	byDate := make(map[string][]*booking.Booking)
	for _, b := range bookings {
		key := b.EventDate().Format(booking.DateLayout)
		byDate[key] = append(byDate[key], b)
	}

	days := make([]DayRecord, 0, rng.Days())
	for _, date := range rng.Dates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dayBookings := slices.Clone(byDate[date.Format(booking.DateLayout)])
		slices.SortStableFunc(dayBookings, func(a, b *booking.Booking) int {
			return a.Interval().Start().Compare(b.Interval().Start())
		})

		slots, err := e.generator.Generate(date, e.policy.GranularityMinutes)
		if err != nil {
			return nil, err
		}

		rec := DayRecord{
			Date:     date,
			Open:     !e.generator.Hours().For(date).Closed,
			Slots:    make([]SlotRecord, 0, len(slots)),
			Bookings: dayBookings,
		}
		for _, s := range slots {
			conflicts := e.detector.Classify(s, dayBookings)
			rec.Slots = append(rec.Slots, SlotRecord{
				Slot:             s,
				Available:        IsAvailable(conflicts),
				Conflicts:        conflicts,
				BufferViolations: BufferViolations(conflicts),
			})
		}
		days = append(days, rec)
	}
	return days, nil
}
