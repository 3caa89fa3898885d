package booking

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated       EventType = "booking.created"
	EventStatusChanged EventType = "booking.status_changed"
	EventRescheduled   EventType = "booking.rescheduled"
	EventDeleted       EventType = "booking.deleted"
)

// Event describes a mutation that changed the availability of Date.
type Event struct {
	Type       EventType `json:"type"`
	BookingID  uuid.UUID `json:"bookingId"`
	Date       string    `json:"date"`
	Status     Status    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(t EventType, b *Booking, date time.Time, at time.Time) Event {
	ev := Event{
		Type:       t,
		Date:       DateOf(date).Format(DateLayout),
		OccurredAt: at,
	}
	if b != nil {
		ev.BookingID = b.ID()
		ev.Status = b.Status()
	}
	return ev
}
