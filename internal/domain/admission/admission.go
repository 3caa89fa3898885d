package admission

import "strings"

// Mode is resolved once at startup; callers never look at the raw flag again.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeEnforce
	ModeLogOnly
)

// ParseMode maps the configured flag. "true"/"enforce" enforce, "log"/"log-only"
// only record, and anything else disables the gate.
func ParseMode(flag string) Mode {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "true", "enforce", "on":
		return ModeEnforce
	case "log", "log-only", "logonly":
		return ModeLogOnly
	default:
		return ModeDisabled
	}
}

func (m Mode) String() string {
	switch m {
	case ModeEnforce:
		return "enforce"
	case ModeLogOnly:
		return "log-only"
	default:
		return "disabled"
	}
}

const ActionCreateBooking = "booking:create"

type Decision struct {
	Allowed   bool
	Remaining int
	// RetryAfterSeconds is set only on a blocked attempt.
	RetryAfterSeconds *int
	// Flagged marks an attempt over the limit that was let through in log-only mode.
	Flagged bool
}

// Open is the decision used when the gate cannot be consulted.
func Open(limit int) Decision {
	return Decision{Allowed: true, Remaining: limit}
}
