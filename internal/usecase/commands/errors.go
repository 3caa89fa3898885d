package commands

import (
	"fmt"

	"showtime-booking/internal/domain/admission"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/usecase/queries"
)

// ConflictError rejects a write because the slot is held by a confirmed
// booking. It unwraps to a cause marked ErrSlotUnavailable (caught by the
// pre-write check) or ErrSlotTaken (rejected by persistence).
type ConflictError struct {
	// Result may be nil when the post-rejection reload failed.
	Result *queries.SlotCheckResult
	cause  error
}

func NewConflictError(result *queries.SlotCheckResult, mark error) *ConflictError {
	msg := "slot unavailable"
	if result != nil && result.BlockedReason != nil {
		msg = *result.BlockedReason
	}
	return &ConflictError{Result: result, cause: errs.Mark(errs.New(msg), mark)}
}

func (e *ConflictError) Error() string {
	n := 0
	if e.Result != nil {
		n = len(e.Result.Conflicts)
	}
	return fmt.Sprintf("%s (%d conflicts)", e.cause.Error(), n)
}

func (e *ConflictError) Unwrap() error {
	return e.cause
}

// AdmissionDeniedError carries the decision so callers can set retry hints.
type AdmissionDeniedError struct {
	Decision admission.Decision
}

func (e *AdmissionDeniedError) Error() string {
	return errs.ErrAdmissionDenied.Error()
}

func (e *AdmissionDeniedError) Unwrap() error {
	return errs.ErrAdmissionDenied
}
