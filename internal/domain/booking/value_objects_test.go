//go:build unit

package booking_test

import (
	"testing"
	"time"

	"showtime-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval(t *testing.T) {
	a := booking.MustInterval(clock(14, 0), clock(18, 0))

	t.Run("rejects empty and inverted intervals", func(t *testing.T) {
		_, err := booking.NewInterval(clock(14, 0), clock(14, 0))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
		_, err = booking.NewInterval(clock(15, 0), clock(14, 0))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("half-open: touching intervals do not overlap", func(t *testing.T) {
		before := booking.MustInterval(clock(13, 0), clock(14, 0))
		after := booking.MustInterval(clock(18, 0), clock(19, 0))
		assert.False(t, a.Overlaps(before))
		assert.False(t, before.Overlaps(a))
		assert.False(t, a.Overlaps(after))
		assert.Equal(t, time.Duration(0), before.GapTo(a))
		assert.True(t, before.EndsBefore(a))
	})

	t.Run("overlap is symmetric and intersection is the shared part", func(t *testing.T) {
		b := booking.MustInterval(clock(17, 0), clock(20, 0))
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))

		got, ok := a.Intersection(b)
		require.True(t, ok)
		assert.True(t, got.Equal(booking.MustInterval(clock(17, 0), clock(18, 0))))
	})

	t.Run("gap is measured in both directions", func(t *testing.T) {
		early := booking.MustInterval(clock(11, 0), clock(13, 15))
		late := booking.MustInterval(clock(18, 20), clock(19, 0))
		assert.Equal(t, 45*time.Minute, early.GapTo(a))
		assert.Equal(t, 45*time.Minute, a.GapTo(early))
		assert.Equal(t, 20*time.Minute, late.GapTo(a))
	})
}

func TestDateRange(t *testing.T) {
	start := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC)

	r, err := booking.NewDateRange(start, end)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Days())
	assert.Len(t, r.Dates(), 3)
	assert.True(t, r.Contains(day.Add(23*time.Hour)))
	assert.Equal(t, "2024-02-14..2024-02-16", r.String())

	assert.True(t, r.Intersects(booking.SingleDay(end)))
	assert.False(t, r.Intersects(booking.SingleDay(booking.AddDays(end, 1))))
	assert.Equal(t, 7, booking.Around(day, 3).Days())

	_, err = booking.NewDateRange(end, start)
	assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"24:00", 1440, true},
		{"24:30", 0, false},
		{"9:30", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := booking.ParseClock(tc.in)
			if !tc.ok {
				assert.ErrorIs(t, err, booking.ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 skips 02:00-03:00 locally.
	d := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	assert.Equal(t, "14:00", booking.FormatClock(d, booking.At(d, 14*60)))
	assert.Equal(t, "24:00", booking.FormatClock(d, booking.At(d, 24*60)))
}
