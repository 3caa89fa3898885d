package availability

import (
	"slices"
	"strings"

	"showtime-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type Detector struct {
	policy Policy
}

func NewDetector(policy Policy) *Detector {
	return &Detector{policy: policy}
}

// Relate classifies slot against a single booking. A slot overlapping the
// booking is a DirectOverlap even when it would also violate the buffer; a
// buffer violation likewise hides a setup conflict.
func (d *Detector) Relate(slot booking.Interval, b *booking.Booking) Relation {
	with := newConflictWith(b)
	bIv := b.Interval()

	if overlap, ok := slot.Intersection(bIv); ok {
		return DirectOverlap{conflictWith: with, Overlap: overlap}
	}

	buffer := d.policy.Buffer(b)
	if gap := slot.GapTo(bIv); gap < buffer {
		return BufferViolation{conflictWith: with, Gap: gap, Required: buffer}
	}

	if slot.EndsBefore(bIv) {
		lead := bIv.Start().Sub(slot.End())
		if required := d.policy.SetupLead(b); lead < required {
			return SetupConflict{conflictWith: with, Lead: lead, Required: required}
		}
	}

	return NoConflict{BookingID: b.ID()}
}

// Classify returns the conflicts slot has with the pending and confirmed
// bookings of its own date, ordered by booking start.
func (d *Detector) Classify(slot booking.Interval, bookings []*booking.Booking) []Conflict {
	return d.ClassifyExcluding(slot, bookings, uuid.Nil)
}

// ClassifyExcluding is Classify ignoring the booking with id exclude, used
// when a booking is checked against everything but itself.
func (d *Detector) ClassifyExcluding(slot booking.Interval, bookings []*booking.Booking, exclude uuid.UUID) []Conflict {
	var conflicts []Conflict
	for _, b := range bookings {
		if b == nil || !b.Status().Constrains() {
			continue
		}
		if exclude != uuid.Nil && b.ID() == exclude {
			continue
		}
		if !booking.SameDate(b.EventDate(), slot.Start()) {
			continue
		}
		if c, ok := d.Relate(slot, b).(Conflict); ok {
			conflicts = append(conflicts, c)
		}
	}

	slices.SortStableFunc(conflicts, func(a, b Conflict) int {
		if c := a.BookingInterval().Start().Compare(b.BookingInterval().Start()); c != 0 {
			return c
		}
		return strings.Compare(a.BookingID().String(), b.BookingID().String())
	})
	return conflicts
}
