package availability

import (
	"errors"
	"time"

	"showtime-booking/internal/domain/booking"
)

var (
	ErrZeroDate             = errors.New("date is required")
	ErrInvalidGranularity   = errors.New("granularity and length must be positive")
	ErrInvalidBusinessHours = errors.New("opening time must be before closing time")
	ErrInvalidPolicy        = errors.New("invalid availability policy")
)

// Policy holds the tunable thresholds of conflict detection and resolution.
type Policy struct {
	BufferMinutes      int
	SetupLeadMinutes   int
	ServiceSetupLead   map[booking.Service]int
	GranularityMinutes int
	MaxAlternatives    int
	SearchWindowDays   int
}

func DefaultPolicy() Policy {
	return Policy{
		BufferMinutes:      30,
		SetupLeadMinutes:   60,
		ServiceSetupLead:   map[booking.Service]int{},
		GranularityMinutes: 30,
		MaxAlternatives:    3,
		SearchWindowDays:   3,
	}
}

func (p Policy) Validate() error {
	if p.BufferMinutes < 0 || p.SetupLeadMinutes < 0 || p.GranularityMinutes <= 0 ||
		p.MaxAlternatives < 0 || p.SearchWindowDays < 0 {
		return ErrInvalidPolicy
	}
	for _, lead := range p.ServiceSetupLead {
		if lead < 0 {
			return ErrInvalidPolicy
		}
	}
	return nil
}

// Buffer is the minimum idle time required on either side of b.
func (p Policy) Buffer(b *booking.Booking) time.Duration {
	if o := b.Overrides().BufferMinutes; o != nil {
		return minutes(*o)
	}
	return minutes(p.BufferMinutes)
}

// SetupLead is the free time b needs right before it starts. A per-booking
// override wins, then the largest lead among b's services, then the default.
func (p Policy) SetupLead(b *booking.Booking) time.Duration {
	if o := b.Overrides().SetupLeadMinutes; o != nil {
		return minutes(*o)
	}
	lead, found := 0, false
	for _, svc := range b.Services().Items() {
		if l, ok := p.ServiceSetupLead[svc]; ok {
			found = true
			lead = max(lead, l)
		}
	}
	if found {
		return minutes(lead)
	}
	return minutes(p.SetupLeadMinutes)
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
