package errs

// Error taxonomy shared by the availability engine and its callers.
var (
	ErrInvalidInput     = New("invalid input")
	ErrInvalidRange     = New("invalid range")
	ErrStoreUnavailable = New("availability store unavailable")

	// ErrSlotUnavailable is returned when the pre-write check finds a
	// confirmed-level conflict.
	ErrSlotUnavailable = New("slot unavailable")
	// ErrSlotTaken is returned when persistence rejects the write because
	// another booking claimed the slot after the check.
	ErrSlotTaken = New("slot taken")

	ErrAdmissionDenied         = New("admission denied")
	ErrBookingNotFound         = New("booking not found")
	ErrInvalidStatusTransition = New("invalid status transition")

	ErrDatabaseOperationFailed = New("database operation failed")
)
