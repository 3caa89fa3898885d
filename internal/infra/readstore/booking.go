package readstore

import (
	"context"
	"time"

	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/infra"
	"showtime-booking/internal/infra/converter"
	"showtime-booking/internal/infra/db"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
)

// BookingReadStore answers range queries for the availability engine.
type BookingReadStore struct {
	db      db.DBTX
	loc     *time.Location
	timeout time.Duration
}

func NewBookingReadStore(dbtx db.DBTX, loc *time.Location, timeout time.Duration) *BookingReadStore {
	return &BookingReadStore{db: dbtx, loc: loc, timeout: timeout}
}

// BookingsOverlapping returns every non-cancelled booking whose event date
// falls inside r, ordered by start. Any failure, the deadline included, is
// marked ErrStoreUnavailable.
func (s *BookingReadStore) BookingsOverlapping(ctx context.Context, r booking.DateRange) ([]*booking.Booking, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	query, args, err := db.Builder.
		Select(converter.BookingColumns...).
		From("bookings").
		Where(sq.GtOrEq{"event_date": pgconv.DateToPgtype(r.Start())}).
		Where(sq.LtOrEq{"event_date": pgconv.DateToPgtype(r.End())}).
		Where(sq.NotEq{"status": booking.StatusCancelled.String()}).
		OrderBy("starts_at", "id").
		ToSql()
	if err != nil {
		return nil, s.unavailable("failed to build bookings range query", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, s.unavailable("failed to query bookings in range", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		row, err := converter.ScanBooking(rows)
		if err != nil {
			return nil, s.unavailable("failed to scan booking", err)
		}
		b, err := converter.RowToBooking(row, s.loc)
		if err != nil {
			return nil, s.unavailable("failed to convert booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("failed to iterate bookings", err)
	}
	return out, nil
}

func (s *BookingReadStore) unavailable(msg string, err error) error {
	return errs.Mark(infra.WrapRepoErr(msg, err), errs.ErrStoreUnavailable)
}
