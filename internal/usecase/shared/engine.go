package shared

import (
	"context"
	"time"

	"showtime-booking/internal/domain/admission"
	"showtime-booking/internal/domain/booking"
)

//go:generate mockgen -source=engine.go -destination=../../../tests/mock/shared/engine.go -package=sharedmock

// AdmissionGate throttles booking attempts. An error means the gate could
// not decide; callers fail open.
type AdmissionGate interface {
	Check(ctx context.Context, identifier, action string) (admission.Decision, error)
	Mode() admission.Mode
	Limit() int
}

type CacheInvalidator interface {
	// Invalidate drops every entry whose range intersects r and returns how many went.
	Invalidate(r booking.DateRange) int
}

type AvailabilityNotifier interface {
	Notify(ctx context.Context, date time.Time, event booking.Event)
}

// AvailabilityFeed lets a client follow changes to one date. The returned
// function unsubscribes and may be called more than once.
type AvailabilityFeed interface {
	Subscribe(date time.Time, cb func(ctx context.Context, event booking.Event) error) func()
}
