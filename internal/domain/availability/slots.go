package availability

import (
	"time"

	"showtime-booking/internal/domain/booking"
)

type SlotGenerator struct {
	hours BusinessHours
}

func NewSlotGenerator(hours BusinessHours) *SlotGenerator {
	return &SlotGenerator{hours: hours}
}

func (g *SlotGenerator) Hours() BusinessHours {
	return g.hours
}

// Generate returns the granularity-sized slots of date in start order. A
// closed day yields no slots.
func (g *SlotGenerator) Generate(date time.Time, granularityMinutes int) ([]booking.Interval, error) {
	return g.Candidates(date, granularityMinutes, granularityMinutes)
}

// Candidates returns windows of lengthMinutes whose starts sit on the
// stepMinutes grid anchored at opening time. Every window lies fully inside
// business hours.
func (g *SlotGenerator) Candidates(date time.Time, stepMinutes, lengthMinutes int) ([]booking.Interval, error) {
	if date.IsZero() {
		return nil, ErrZeroDate
	}
	if stepMinutes <= 0 || lengthMinutes <= 0 {
		return nil, ErrInvalidGranularity
	}

	dh := g.hours.For(date)
	if dh.Closed {
		return nil, nil
	}

	day := booking.DateOf(date)
	slots := make([]booking.Interval, 0, (dh.Close-dh.Open)/stepMinutes)
	for start := dh.Open; start+lengthMinutes <= dh.Close; start += stepMinutes {
		iv, err := booking.NewInterval(booking.At(day, start), booking.At(day, start+lengthMinutes))
		if err != nil {
			// only reachable across a DST gap; skip the window
			continue
		}
		slots = append(slots, iv)
	}
	return slots, nil
}

func (g *SlotGenerator) WithinHours(slot booking.Interval) bool {
	window, open := g.hours.Window(slot.Start())
	if !open {
		return false
	}
	return window.Contains(slot)
}
