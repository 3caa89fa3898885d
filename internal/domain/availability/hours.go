package availability

import (
	"time"

	"showtime-booking/internal/domain/booking"
)

const (
	defaultOpenMinutes  = 10 * 60
	defaultCloseMinutes = 23 * 60
)

// DayHours is one weekday's opening window in minutes since midnight.
type DayHours struct {
	Open   int
	Close  int
	Closed bool
}

func NewDayHours(open, closing string) (DayHours, error) {
	o, err := booking.ParseClock(open)
	if err != nil {
		return DayHours{}, err
	}
	c, err := booking.ParseClock(closing)
	if err != nil {
		return DayHours{}, err
	}
	if o >= c {
		return DayHours{}, ErrInvalidBusinessHours
	}
	return DayHours{Open: o, Close: c}, nil
}

func ClosedDay() DayHours {
	return DayHours{Closed: true}
}

type BusinessHours struct {
	days [7]DayHours
}

// DefaultBusinessHours opens 10:00-23:00 every day.
func DefaultBusinessHours() BusinessHours {
	var h BusinessHours
	for i := range h.days {
		h.days[i] = DayHours{Open: defaultOpenMinutes, Close: defaultCloseMinutes}
	}
	return h
}

// NewBusinessHours starts from the defaults and replaces the given weekdays.
func NewBusinessHours(overrides map[time.Weekday]DayHours) BusinessHours {
	h := DefaultBusinessHours()
	for wd, dh := range overrides {
		h.days[wd] = dh
	}
	return h
}

func (h BusinessHours) For(date time.Time) DayHours {
	return h.days[date.Weekday()]
}

// Window is the opening interval for date, false when closed.
func (h BusinessHours) Window(date time.Time) (booking.Interval, bool) {
	dh := h.For(date)
	if dh.Closed {
		return booking.Interval{}, false
	}
	d := booking.DateOf(date)
	iv, err := booking.NewInterval(booking.At(d, dh.Open), booking.At(d, dh.Close))
	if err != nil {
		return booking.Interval{}, false
	}
	return iv, true
}
