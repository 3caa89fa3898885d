//go:build unit

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"showtime-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hours.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBusinessHours(t *testing.T) {
	t.Run("weekday table", func(t *testing.T) {
		path := writeFile(t, `
[days.Friday]
open = "12:00"
close = "23:30"

[days.sunday]
closed = true
`)
		f, err := config.LoadBusinessHours(path)
		require.NoError(t, err)

		days, err := f.ByWeekday()
		require.NoError(t, err)
		assert.Equal(t, map[time.Weekday]config.DayHoursFile{
			time.Friday: {Open: "12:00", Close: "23:30"},
			time.Sunday: {Closed: true},
		}, days)
	})

	t.Run("unknown weekday", func(t *testing.T) {
		_, err := config.LoadBusinessHours(writeFile(t, "[days.funday]\nclosed = true\n"))
		assert.ErrorContains(t, err, "funday")
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := config.LoadBusinessHours(writeFile(t, "[days.monday\n"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadBusinessHours(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "showtime")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Availability.BufferMinutes)
	assert.Equal(t, map[string]int{"dj": 60, "karaoke": 45, "photography": 15}, cfg.Availability.ServiceSetupLead)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "true", cfg.Admission.Mode)
	assert.Equal(t, 15*time.Minute, cfg.Admission.Window)

	loc, err := cfg.Availability.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}
