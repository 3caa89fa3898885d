//go:build unit

package availability_test

import (
	"testing"
	"time"

	"showtime-booking/internal/domain/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotGenerator(t *testing.T) {
	g := availability.NewSlotGenerator(availability.DefaultBusinessHours())

	t.Run("slots tile the opening hours", func(t *testing.T) {
		slots, err := g.Generate(eventDay, 60)
		require.NoError(t, err)
		require.Len(t, slots, 13)
		assert.Equal(t, at(eventDay, "10:00"), slots[0].Start())
		assert.Equal(t, at(eventDay, "23:00"), slots[12].End())
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, slots[i-1].End(), slots[i].Start())
		}
	})

	t.Run("candidates stay inside hours", func(t *testing.T) {
		slots, err := g.Candidates(eventDay, 30, 240)
		require.NoError(t, err)
		assert.Equal(t, "2024-02-15 19:00-23:00", slots[len(slots)-1].String())
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := g.Generate(time.Time{}, 30)
		assert.ErrorIs(t, err, availability.ErrZeroDate)
		_, err = g.Generate(eventDay, 0)
		assert.ErrorIs(t, err, availability.ErrInvalidGranularity)
	})

	t.Run("within hours", func(t *testing.T) {
		assert.True(t, g.WithinHours(slot(eventDay, "10:00", "23:00")))
		assert.False(t, g.WithinHours(slot(eventDay, "22:00", "23:30")))
	})
}

func TestBusinessHours(t *testing.T) {
	_, err := availability.NewDayHours("18:00", "09:00")
	assert.ErrorIs(t, err, availability.ErrInvalidBusinessHours)

	late, err := availability.NewDayHours("12:00", "24:00")
	require.NoError(t, err)
	h := availability.NewBusinessHours(map[time.Weekday]availability.DayHours{time.Thursday: late})

	window, open := h.Window(eventDay)
	require.True(t, open)
	assert.Equal(t, at(eventDay, "12:00"), window.Start())
	assert.Equal(t, at(eventDay, "24:00"), window.End())

	// untouched weekdays keep the defaults
	fri, open := h.Window(eventDay.AddDate(0, 0, 1))
	require.True(t, open)
	assert.Equal(t, 10, fri.Start().Hour())
}
