package availability

import (
	"fmt"
	"time"

	"showtime-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type Kind string

const (
	KindDirectOverlap   Kind = "direct-overlap"
	KindBufferViolation Kind = "buffer-violation"
	KindSetupConflict   Kind = "setup-conflict"
)

func (k Kind) String() string {
	return string(k)
}

// Relation is the closed set of outcomes of comparing a slot with one
// booking: NoConflict, DirectOverlap, BufferViolation or SetupConflict.
// The unexported method keeps the set closed to this package.
type Relation interface {
	relation()
}

// Conflict is every Relation except NoConflict.
type Conflict interface {
	Relation
	Kind() Kind
	BookingID() uuid.UUID
	BookingInterval() booking.Interval
	BookingStatus() booking.Status
	// Hard reports whether the conflict blocks the slot. Only confirmed
	// bookings block; pending ones are advisory.
	Hard() bool
}

type NoConflict struct {
	BookingID uuid.UUID
}

func (NoConflict) relation() {}

type conflictWith struct {
	bookingID uuid.UUID
	interval  booking.Interval
	status    booking.Status
}

func newConflictWith(b *booking.Booking) conflictWith {
	return conflictWith{bookingID: b.ID(), interval: b.Interval(), status: b.Status()}
}

func (c conflictWith) relation() {}

func (c conflictWith) BookingID() uuid.UUID {
	return c.bookingID
}

func (c conflictWith) BookingInterval() booking.Interval {
	return c.interval
}

func (c conflictWith) BookingStatus() booking.Status {
	return c.status
}

func (c conflictWith) Hard() bool {
	return c.status.IsHardConstraint()
}

type DirectOverlap struct {
	conflictWith
	Overlap booking.Interval
}

func (DirectOverlap) Kind() Kind {
	return KindDirectOverlap
}

type BufferViolation struct {
	conflictWith
	Gap      time.Duration
	Required time.Duration
}

func (BufferViolation) Kind() Kind {
	return KindBufferViolation
}

type SetupConflict struct {
	conflictWith
	Lead     time.Duration
	Required time.Duration
}

func (SetupConflict) Kind() Kind {
	return KindSetupConflict
}

// Describe renders a conflict for people.
func Describe(c Conflict) string {
	iv := c.BookingInterval()
	span := iv.Start().Format(booking.ClockLayout) + "-" + iv.End().Format(booking.ClockLayout)
	switch v := c.(type) {
	case DirectOverlap:
		return fmt.Sprintf("overlaps %s booking %s", v.status, span)
	case BufferViolation:
		return fmt.Sprintf("leaves %s next to %s booking %s, %s buffer required",
			v.Gap, v.status, span, v.Required)
	case SetupConflict:
		return fmt.Sprintf("ends %s before %s booking %s, %s setup lead required",
			v.Lead, v.status, span, v.Required)
	default:
		panic(fmt.Sprintf("availability: unhandled conflict %T", c))
	}
}

func HardConflicts(conflicts []Conflict) []Conflict {
	var out []Conflict
	for _, c := range conflicts {
		if c.Hard() {
			out = append(out, c)
		}
	}
	return out
}

func BufferViolations(conflicts []Conflict) []Conflict {
	var out []Conflict
	for _, c := range conflicts {
		if _, ok := c.(BufferViolation); ok {
			out = append(out, c)
		}
	}
	return out
}

// IsAvailable is true when no conflict blocks the slot.
func IsAvailable(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Hard() {
			return false
		}
	}
	return true
}
