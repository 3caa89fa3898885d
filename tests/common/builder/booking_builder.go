//go:build unit || e2e

package builder

import (
	"time"

	"showtime-booking/internal/domain/booking"
	reqdto "showtime-booking/internal/handler/dto/request"
	"showtime-booking/internal/infra/converter"
	"showtime-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingBuilder defaults to a confirmed DJ booking, 2024-02-15 14:00-18:00 UTC.
type BookingBuilder struct {
	ID        uuid.UUID
	Date      time.Time
	StartMin  int
	EndMin    int
	Services  []string
	Status    booking.Status
	Overrides booking.Overrides
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBookingBuilder() *BookingBuilder {
	created := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:        uuid.New(),
		Date:      time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		StartMin:  14 * 60,
		EndMin:    18 * 60,
		Services:  []string{"dj"},
		Status:    booking.StatusConfirmed,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) OnDate(date time.Time) *BookingBuilder {
	b.Date = booking.DateOf(date)
	return b
}

// Between takes "HH:MM" clock values on the builder's date.
func (b *BookingBuilder) Between(start, end string) *BookingBuilder {
	b.StartMin = mustClock(start)
	b.EndMin = mustClock(end)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithServices(services ...string) *BookingBuilder {
	b.Services = services
	return b
}

func (b *BookingBuilder) WithBuffer(minutes int) *BookingBuilder {
	b.Overrides.BufferMinutes = &minutes
	return b
}

func (b *BookingBuilder) WithSetupLead(minutes int) *BookingBuilder {
	b.Overrides.SetupLeadMinutes = &minutes
	return b
}

func (b *BookingBuilder) Interval() booking.Interval {
	return booking.MustInterval(booking.At(b.Date, b.StartMin), booking.At(b.Date, b.EndMin))
}

// Build methods
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	services, err := booking.NewServiceSet(b.Services)
	if err != nil {
		panic(err)
	}
	return booking.Reconstruct(b.ID, b.Date, b.Interval(), services, b.Status, b.Overrides, b.CreatedAt, b.UpdatedAt)
}

func (b *BookingBuilder) BuildRow() converter.BookingRow {
	return converter.BookingToRow(b.BuildDomain())
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return queries.NewBookingView(b.BuildDomain())
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	iv := b.Interval()
	return reqdto.CreateBookingRequest{
		Date:      b.Date.Format(booking.DateLayout),
		StartTime: booking.FormatClock(b.Date, iv.Start()),
		EndTime:   booking.FormatClock(b.Date, iv.End()),
		Services:  b.Services,
	}
}

func (b *BookingBuilder) BuildSlotCheckRequestDTO() reqdto.SlotCheckRequest {
	req := b.BuildCreateRequestDTO()
	return reqdto.SlotCheckRequest{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Services:  req.Services,
	}
}

func mustClock(s string) int {
	m, err := booking.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return m
}
