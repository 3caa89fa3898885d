package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// BusinessHoursFile mirrors the TOML layout:
//
//	[days.monday]
//	open = "10:00"
//	close = "23:00"
//
//	[days.sunday]
//	closed = true
type BusinessHoursFile struct {
	Days map[string]DayHoursFile `toml:"days"`
}

type DayHoursFile struct {
	Open   string `toml:"open"`
	Close  string `toml:"close"`
	Closed bool   `toml:"closed"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func LoadBusinessHours(path string) (BusinessHoursFile, error) {
	var f BusinessHoursFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return BusinessHoursFile{}, fmt.Errorf("failed to decode business hours file %s: %w", path, err)
	}
	if _, err := f.ByWeekday(); err != nil {
		return BusinessHoursFile{}, err
	}
	return f, nil
}

// ByWeekday keys the parsed days by time.Weekday. Unknown day names are rejected.
func (f BusinessHoursFile) ByWeekday() (map[time.Weekday]DayHoursFile, error) {
	out := make(map[time.Weekday]DayHoursFile, len(f.Days))
	for name, day := range f.Days {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q in business hours", name)
		}
		out[wd] = day
	}
	return out, nil
}
