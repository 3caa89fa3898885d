package shared

import (
	"context"

	"showtime-booking/internal/domain/booking"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow.go -package=sharedmock

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
}

// BookingRepository is bound to the transaction it was obtained from.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// FindByID locks the row until the transaction ends.
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingReadStore answers "what is booked in this date range". Cancelled
// bookings are never returned.
type BookingReadStore interface {
	BookingsOverlapping(ctx context.Context, r booking.DateRange) ([]*booking.Booking, error)
}
