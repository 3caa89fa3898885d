package converter

import (
	"time"

	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the select list scanned by ScanBooking, in order.
var BookingColumns = []string{
	"id",
	"event_date",
	"starts_at",
	"ends_at",
	"services",
	"status",
	"buffer_minutes",
	"setup_lead_minutes",
	"created_at",
	"updated_at",
}

type BookingRow struct {
	ID               uuid.UUID
	EventDate        pgtype.Date
	StartsAt         pgtype.Timestamptz
	EndsAt           pgtype.Timestamptz
	Services         []string
	Status           string
	BufferMinutes    pgtype.Int4
	SetupLeadMinutes pgtype.Int4
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

// Scanner is implemented by pgx.Row and pgx.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

func ScanBooking(s Scanner) (BookingRow, error) {
	var row BookingRow
	err := s.Scan(
		&row.ID,
		&row.EventDate,
		&row.StartsAt,
		&row.EndsAt,
		&row.Services,
		&row.Status,
		&row.BufferMinutes,
		&row.SetupLeadMinutes,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	return row, err
}

// BookingToRow flattens a booking for insert/update.
func BookingToRow(b *booking.Booking) BookingRow {
	ov := b.Overrides()
	return BookingRow{
		ID:               b.ID(),
		EventDate:        pgconv.DateToPgtype(b.EventDate()),
		StartsAt:         pgconv.TimeToPgtype(b.Interval().Start()),
		EndsAt:           pgconv.TimeToPgtype(b.Interval().End()),
		Services:         b.Services().Strings(),
		Status:           b.Status().String(),
		BufferMinutes:    pgconv.IntPtrToPgtype(ov.BufferMinutes),
		SetupLeadMinutes: pgconv.IntPtrToPgtype(ov.SetupLeadMinutes),
		CreatedAt:        pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

// RowToBooking rebuilds the aggregate with every instant expressed in loc,
// the business timezone.
func RowToBooking(row BookingRow, loc *time.Location) (*booking.Booking, error) {
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}
	services, err := booking.NewServiceSet(row.Services)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}
	interval, err := booking.NewInterval(
		pgconv.TimeFromPgtype(row.StartsAt).In(loc),
		pgconv.TimeFromPgtype(row.EndsAt).In(loc),
	)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}

	return booking.Reconstruct(
		row.ID,
		pgconv.DateFromPgtype(row.EventDate, loc),
		interval,
		services,
		status,
		booking.Overrides{
			BufferMinutes:    pgconv.IntPtrFromPgtype(row.BufferMinutes),
			SetupLeadMinutes: pgconv.IntPtrFromPgtype(row.SetupLeadMinutes),
		},
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
