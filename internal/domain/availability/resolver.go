package availability

import (
	"context"
	"slices"
	"time"

	"showtime-booking/internal/domain/booking"

	"github.com/google/uuid"
)

const (
	OutcomeAlternativesFound = "alternatives found"
	OutcomeManualResolution  = "manual resolution required"
)

// SearchWindow bounds an alternatives search.
type SearchWindow struct {
	// Days on either side of the requested date that may be proposed.
	Days int
	// NotBefore drops candidates starting earlier, normally "now".
	NotBefore time.Time
	// Exclude ignores one booking, e.g. the one being rescheduled.
	Exclude uuid.UUID
}

type Resolution struct {
	Resolved     bool
	Outcome      string
	Alternatives []booking.Interval
}

type Resolver struct {
	generator   *SlotGenerator
	detector    *Detector
	granularity int
	limit       int
}

func NewResolver(generator *SlotGenerator, detector *Detector, policy Policy) *Resolver {
	return &Resolver{
		generator:   generator,
		detector:    detector,
		granularity: policy.GranularityMinutes,
		limit:       policy.MaxAlternatives,
	}
}

type candidate struct {
	slot     booking.Interval
	distance time.Duration
}

// SuggestAlternatives proposes up to the configured number of slots with
// the requested duration and no blocking conflict. The requested day is
// searched first (later, then earlier), then the adjacent days within the
// window. Results are ordered by distance from the requested start, ties
// broken chronologically. bookings must cover the whole window.
func (r *Resolver) SuggestAlternatives(
	ctx context.Context,
	slot booking.Interval,
	bookings []*booking.Booking,
	window SearchWindow,
) (Resolution, error) {
	length := int(slot.Duration() / time.Minute)
	if length <= 0 || r.limit == 0 {
		return manualResolution(), nil
	}

	date := slot.Date()
	var earliestDay time.Time
	if !window.NotBefore.IsZero() {
		earliestDay = booking.DateOf(window.NotBefore.In(date.Location()))
	}

	var found []candidate
	for _, offset := range dayOffsets(window.Days) {
		if err := ctx.Err(); err != nil {
			return Resolution{}, err
		}

		day := booking.AddDays(date, offset)
		if !earliestDay.IsZero() && day.Before(earliestDay) {
			continue
		}

		slots, err := r.generator.Candidates(day, r.granularity, length)
		if err != nil {
			return Resolution{}, err
		}
		for _, c := range slots {
			if c.Equal(slot) {
				continue
			}
			if !window.NotBefore.IsZero() && c.Start().Before(window.NotBefore) {
				continue
			}
			if !IsAvailable(r.detector.ClassifyExcluding(c, bookings, window.Exclude)) {
				continue
			}
			found = append(found, candidate{slot: c, distance: absDuration(c.Start().Sub(slot.Start()))})
		}
	}

	if len(found) == 0 {
		return manualResolution(), nil
	}

	slices.SortStableFunc(found, func(a, b candidate) int {
		if a.distance != b.distance {
			if a.distance < b.distance {
				return -1
			}
			return 1
		}
		return a.slot.Start().Compare(b.slot.Start())
	})

	n := min(len(found), r.limit)
	alternatives := make([]booking.Interval, n)
	for i := range n {
		alternatives[i] = found[i].slot
	}
	return Resolution{Resolved: true, Outcome: OutcomeAlternativesFound, Alternatives: alternatives}, nil
}

func manualResolution() Resolution {
	return Resolution{Resolved: false, Outcome: OutcomeManualResolution}
}

// dayOffsets yields 0, +1, -1, +2, -2, ...
func dayOffsets(days int) []int {
	out := make([]int, 0, 2*days+1)
	out = append(out, 0)
	for d := 1; d <= days; d++ {
		out = append(out, d, -d)
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
