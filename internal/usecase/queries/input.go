package queries

import (
	"time"

	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/pkg/errs"
)

// ParseSlot turns a wire-level date and "HH:MM" pair into an interval in
// loc. Malformed values are ErrInvalidInput; start >= end is ErrInvalidRange.
func ParseSlot(loc *time.Location, date, startTime, endTime string) (time.Time, booking.Interval, error) {
	day, err := booking.ParseDate(date, loc)
	if err != nil {
		return time.Time{}, booking.Interval{}, errs.Mark(err, errs.ErrInvalidInput)
	}
	startMin, err := booking.ParseClock(startTime)
	if err != nil {
		return time.Time{}, booking.Interval{}, errs.Mark(err, errs.ErrInvalidInput)
	}
	endMin, err := booking.ParseClock(endTime)
	if err != nil {
		return time.Time{}, booking.Interval{}, errs.Mark(err, errs.ErrInvalidInput)
	}
	if startMin >= endMin {
		return time.Time{}, booking.Interval{}, errs.Mark(
			errs.Wrapf(booking.ErrInvalidInterval, "%s-%s", startTime, endTime),
			errs.ErrInvalidRange,
		)
	}

	interval, err := booking.NewInterval(booking.At(day, startMin), booking.At(day, endMin))
	if err != nil {
		return time.Time{}, booking.Interval{}, errs.Mark(err, errs.ErrInvalidRange)
	}
	return day, interval, nil
}

// ParseServices accepts an empty list.
func ParseServices(names []string) (booking.ServiceSet, error) {
	set, err := booking.NewServiceSet(names)
	if err != nil {
		return booking.ServiceSet{}, errs.Mark(err, errs.ErrInvalidInput)
	}
	return set, nil
}

func ParseRequiredServices(names []string) (booking.ServiceSet, error) {
	set, err := booking.NewRequiredServiceSet(names)
	if err != nil {
		return booking.ServiceSet{}, errs.Mark(err, errs.ErrInvalidInput)
	}
	return set, nil
}
