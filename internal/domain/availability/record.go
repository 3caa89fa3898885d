package availability

import (
	"time"

	"showtime-booking/internal/domain/booking"
)

type SlotRecord struct {
	Slot             booking.Interval
	Available        bool
	Conflicts        []Conflict
	BufferViolations []Conflict
}

// DayRecord is the computed availability of one calendar day.
type DayRecord struct {
	Date     time.Time
	Open     bool
	Slots    []SlotRecord
	Bookings []*booking.Booking
}

func (d DayRecord) AvailableSlots() int {
	n := 0
	for _, s := range d.Slots {
		if s.Available {
			n++
		}
	}
	return n
}

func (d DayRecord) HasAvailableSlot() bool {
	return d.AvailableSlots() > 0
}

func (d DayRecord) ConfirmedBookings() []*booking.Booking {
	var out []*booking.Booking
	for _, b := range d.Bookings {
		if b.IsConfirmed() {
			out = append(out, b)
		}
	}
	return out
}

// PrimaryBooking is the earliest confirmed booking of the day, falling back
// to the earliest pending one.
func (d DayRecord) PrimaryBooking() *booking.Booking {
	var pending *booking.Booking
	for _, b := range d.Bookings {
		switch {
		case b.IsConfirmed():
			return b
		case pending == nil && b.Status().IsAdvisory():
			pending = b
		}
	}
	return pending
}

// CacheKey identifies a cached availability computation: the date range it
// covers plus the canonical requested service set.
type CacheKey struct {
	Range    booking.DateRange
	Services string
}

func NewCacheKey(r booking.DateRange, services booking.ServiceSet) CacheKey {
	return CacheKey{Range: r, Services: services.Key()}
}

func (k CacheKey) String() string {
	return k.Range.String() + "|" + k.Services
}
