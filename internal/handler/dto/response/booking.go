package response

import (
	"time"

	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Services  []string  `json:"services"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:        v.ID,
		Date:      v.Date.Format(booking.DateLayout),
		StartTime: booking.FormatClock(v.Date, v.Start),
		EndTime:   booking.FormatClock(v.Date, v.End),
		Services:  v.Services,
		Status:    v.Status.String(),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type CreateBookingResponse struct {
	Booking   *BookingResponse `json:"booking"`
	Remaining *int             `json:"remainingAttempts,omitempty"`
}
