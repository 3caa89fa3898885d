package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInterval         = errors.New("start must be before end")
	ErrInvalidDateRange        = errors.New("start date must not be after end date")
	ErrInvalidDate             = errors.New("invalid date")
	ErrInvalidClock            = errors.New("invalid time of day")
	ErrIntervalOutsideDate     = errors.New("interval must start on the event date and end by midnight")
	ErrInvalidStatus           = errors.New("invalid booking status")
	ErrInvalidInitialStatus    = errors.New("a booking can only be created as pending or confirmed")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrNotReschedulable        = errors.New("only pending or confirmed bookings can be rescheduled")
	ErrUnknownService          = errors.New("unknown service")
	ErrEmptyServices           = errors.New("at least one service is required")
	ErrNegativeOverride        = errors.New("override minutes must not be negative")
)

// Overrides replace the policy buffer/setup lead for a single booking.
type Overrides struct {
	BufferMinutes    *int
	SetupLeadMinutes *int
}

func (o Overrides) validate() error {
	if o.BufferMinutes != nil && *o.BufferMinutes < 0 {
		return ErrNegativeOverride
	}
	if o.SetupLeadMinutes != nil && *o.SetupLeadMinutes < 0 {
		return ErrNegativeOverride
	}
	return nil
}

type Booking struct {
	id        uuid.UUID
	eventDate time.Time
	interval  Interval
	services  ServiceSet
	status    Status
	overrides Overrides
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(
	eventDate time.Time,
	interval Interval,
	services ServiceSet,
	status Status,
	overrides Overrides,
	now time.Time,
) (*Booking, error) {
	if status != StatusPending && status != StatusConfirmed {
		return nil, ErrInvalidInitialStatus
	}
	if services.IsEmpty() {
		return nil, ErrEmptyServices
	}
	if err := overrides.validate(); err != nil {
		return nil, err
	}
	date := DateOf(eventDate)
	if err := checkOnDate(date, interval); err != nil {
		return nil, err
	}

	return &Booking{
		id:        uuid.New(),
		eventDate: date,
		interval:  interval,
		services:  services,
		status:    status,
		overrides: overrides,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	eventDate time.Time,
	interval Interval,
	services ServiceSet,
	status Status,
	overrides Overrides,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		eventDate: DateOf(eventDate),
		interval:  interval,
		services:  services,
		status:    status,
		overrides: overrides,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func checkOnDate(date time.Time, interval Interval) error {
	if !SameDate(interval.Start(), date) || interval.End().After(AddDays(date, 1)) {
		return ErrIntervalOutsideDate
	}
	return nil
}

func (b *Booking) ID() uuid.UUID {
	return b.id
}

func (b *Booking) EventDate() time.Time {
	return b.eventDate
}

func (b *Booking) Interval() Interval {
	return b.interval
}

func (b *Booking) Services() ServiceSet {
	return b.services
}

func (b *Booking) Status() Status {
	return b.status
}

func (b *Booking) Overrides() Overrides {
	return b.overrides
}

func (b *Booking) CreatedAt() time.Time {
	return b.createdAt
}

func (b *Booking) UpdatedAt() time.Time {
	return b.updatedAt
}

func (b *Booking) IsConfirmed() bool {
	return b.status == StatusConfirmed
}

func (b *Booking) ChangeStatus(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !b.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, b.status, next)
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// Reschedule moves the booking. Services are replaced only when a non-empty set is given.
func (b *Booking) Reschedule(eventDate time.Time, interval Interval, services ServiceSet, now time.Time) error {
	if !b.status.Constrains() {
		return ErrNotReschedulable
	}
	date := DateOf(eventDate)
	if err := checkOnDate(date, interval); err != nil {
		return err
	}
	b.eventDate = date
	b.interval = interval
	if !services.IsEmpty() {
		b.services = services
	}
	b.updatedAt = now
	return nil
}
