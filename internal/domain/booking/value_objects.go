package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Interval is a half-open [start, end) span of wall-clock time. Adjacent
// intervals do not overlap.
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start, end: end}, nil
}

// MustInterval is for literals in tests and fixed tables only.
func MustInterval(start, end time.Time) Interval {
	iv, err := NewInterval(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

func (i Interval) Start() time.Time {
	return i.start
}

func (i Interval) End() time.Time {
	return i.end
}

func (i Interval) Duration() time.Duration {
	return i.end.Sub(i.start)
}

func (i Interval) IsZero() bool {
	return i.start.IsZero() && i.end.IsZero()
}

// Date is the calendar day the interval starts on.
func (i Interval) Date() time.Time {
	return DateOf(i.start)
}

func (i Interval) Equal(o Interval) bool {
	return i.start.Equal(o.start) && i.end.Equal(o.end)
}

func (i Interval) Overlaps(o Interval) bool {
	return i.start.Before(o.end) && o.start.Before(i.end)
}

func (i Interval) Intersection(o Interval) (Interval, bool) {
	if !i.Overlaps(o) {
		return Interval{}, false
	}
	start := i.start
	if o.start.After(start) {
		start = o.start
	}
	end := i.end
	if o.end.Before(end) {
		end = o.end
	}
	return Interval{start: start, end: end}, true
}

// GapTo returns the free time between two intervals, zero when they touch or overlap.
func (i Interval) GapTo(o Interval) time.Duration {
	switch {
	case i.Overlaps(o):
		return 0
	case !i.end.After(o.start):
		return o.start.Sub(i.end)
	default:
		return i.start.Sub(o.end)
	}
}

// EndsBefore reports whether i finishes no later than o starts.
func (i Interval) EndsBefore(o Interval) bool {
	return !i.end.After(o.start)
}

func (i Interval) Contains(o Interval) bool {
	return !o.start.Before(i.start) && !o.end.After(i.end)
}

func (i Interval) Shift(d time.Duration) Interval {
	return Interval{start: i.start.Add(d), end: i.end.Add(d)}
}

func (i Interval) String() string {
	return fmt.Sprintf("%s %s-%s", i.start.Format(DateLayout), i.start.Format(ClockLayout), i.end.Format(ClockLayout))
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := DateOf(start), DateOf(end)
	if e.Before(s) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{start: s, end: e}, nil
}

func SingleDay(date time.Time) DateRange {
	d := DateOf(date)
	return DateRange{start: d, end: d}
}

// Around returns date ± days.
func Around(date time.Time, days int) DateRange {
	d := DateOf(date)
	if days < 0 {
		days = 0
	}
	return DateRange{start: AddDays(d, -days), end: AddDays(d, days)}
}

func (r DateRange) Start() time.Time {
	return r.start
}

func (r DateRange) End() time.Time {
	return r.end
}

func (r DateRange) Days() int {
	return DaysBetween(r.start, r.end) + 1
}

func (r DateRange) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(r.start) && !d.After(r.end)
}

func (r DateRange) Intersects(o DateRange) bool {
	return !r.end.Before(o.start) && !o.end.Before(r.start)
}

func (r DateRange) Union(o DateRange) DateRange {
	out := r
	if o.start.Before(out.start) {
		out.start = o.start
	}
	if o.end.After(out.end) {
		out.end = o.end
	}
	return out
}

func (r DateRange) Dates() []time.Time {
	out := make([]time.Time, 0, r.Days())
	for d := r.start; !d.After(r.end); d = AddDays(d, 1) {
		out = append(out, d)
	}
	return out
}

func (r DateRange) String() string {
	return r.start.Format(DateLayout) + ".." + r.end.Format(DateLayout)
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func AddDays(date time.Time, days int) time.Time {
	return DateOf(date).AddDate(0, 0, days)
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween counts calendar days from a to b, ignoring DST shifts.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseClock parses "HH:MM" into minutes since midnight. "24:00" is accepted
// as the end of the day.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// At returns the wall-clock instant minutes after midnight of date.
func At(date time.Time, minutes int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, minutes, 0, 0, date.Location())
}

// MinutesOf is the inverse of At for instants on the given date.
func MinutesOf(date, t time.Time) int {
	return DaysBetween(date, t)*24*60 + t.Hour()*60 + t.Minute()
}

func FormatClock(date, t time.Time) string {
	mins := MinutesOf(date, t)
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
