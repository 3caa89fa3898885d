package booking

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusPending},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsHardConstraint reports whether a booking in this status blocks a slot.
func (s Status) IsHardConstraint() bool {
	return s == StatusConfirmed
}

// IsAdvisory reports whether conflicts with this status are surfaced without blocking.
func (s Status) IsAdvisory() bool {
	return s == StatusPending
}

// Constrains reports whether the detector takes the booking into account at all.
func (s Status) Constrains() bool {
	return s.IsHardConstraint() || s.IsAdvisory()
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
