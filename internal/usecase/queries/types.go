package queries

import (
	"time"

	"showtime-booking/internal/domain/availability"
	"showtime-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type RangeCheckParams struct {
	StartDate       string
	EndDate         string
	IncludeBookings bool
	Services        []string
}

type SlotCheckParams struct {
	Date      string
	StartTime string
	EndTime   string
	Services  []string
}

// BookingView represents read-optimized booking data
type BookingView struct {
	ID        uuid.UUID
	Date      time.Time
	Start     time.Time
	End       time.Time
	Services  []string
	Status    booking.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBookingView(b *booking.Booking) *BookingView {
	return &BookingView{
		ID:        b.ID(),
		Date:      b.EventDate(),
		Start:     b.Interval().Start(),
		End:       b.Interval().End(),
		Services:  b.Services().Strings(),
		Status:    b.Status(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

type DayAvailability struct {
	Date           time.Time
	IsAvailable    bool
	BlockedReason  *string
	AvailableSlots int
	Booking        *BookingView
}

type RangeCheckResult struct {
	Days          []DayAvailability
	TotalDays     int
	AvailableDays int
	BookedDays    int
}

type ConflictView struct {
	Type          availability.Kind
	BookingID     uuid.UUID
	BookingStatus booking.Status
	Start         time.Time
	End           time.Time
	Hard          bool
	Message       string
	Alternatives  []booking.Interval
}

type ResolutionView struct {
	Resolved     bool
	Outcome      string
	Alternatives []booking.Interval
}

type SlotCheckResult struct {
	Date          time.Time
	Slot          booking.Interval
	Available     bool
	BlockedReason *string
	Conflicts     []ConflictView
	Resolution    *ResolutionView
}

// NewSlotCheckResult flattens an evaluation. Every conflict carries the
// same alternatives list as the resolution.
func NewSlotCheckResult(date time.Time, ev availability.Evaluation) *SlotCheckResult {
	out := &SlotCheckResult{
		Date:      date,
		Slot:      ev.Slot,
		Available: ev.Available,
		Conflicts: make([]ConflictView, 0, len(ev.Conflicts)),
	}
	if ev.BlockedReason != "" {
		out.BlockedReason = reason(ev.BlockedReason)
	}

	var alternatives []booking.Interval
	if ev.Resolution != nil {
		alternatives = ev.Resolution.Alternatives
		out.Resolution = &ResolutionView{
			Resolved:     ev.Resolution.Resolved,
			Outcome:      ev.Resolution.Outcome,
			Alternatives: alternatives,
		}
	}

	for _, c := range ev.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictView{
			Type:          c.Kind(),
			BookingID:     c.BookingID(),
			BookingStatus: c.BookingStatus(),
			Start:         c.BookingInterval().Start(),
			End:           c.BookingInterval().End(),
			Hard:          c.Hard(),
			Message:       availability.Describe(c),
			Alternatives:  alternatives,
		})
	}
	return out
}
