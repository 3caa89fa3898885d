package repository

import (
	"context"
	"time"

	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/infra"
	"showtime-booking/internal/infra/converter"
	"showtime-booking/internal/infra/db"
	"showtime-booking/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const bookingsTable = "bookings"

// BookingRepository writes bookings through whatever DBTX it is bound to,
// normally a transaction handed out by the unit of work.
type BookingRepository struct {
	db  db.DBTX
	loc *time.Location
}

func NewBookingRepository(dbtx db.DBTX, loc *time.Location) *BookingRepository {
	return &BookingRepository{db: dbtx, loc: loc}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	row := converter.BookingToRow(b)

	query, args, err := db.Builder.
		Insert(bookingsTable).
		Columns(converter.BookingColumns...).
		Values(
			row.ID,
			row.EventDate,
			row.StartsAt,
			row.EndsAt,
			row.Services,
			row.Status,
			row.BufferMinutes,
			row.SetupLeadMinutes,
			row.CreatedAt,
			row.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking insert", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := db.Builder.
		Select(converter.BookingColumns...).
		From(bookingsTable).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking select", err, infra.KindDBFailure)
	}

	row, err := converter.ScanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	b, err := converter.RowToBooking(row, r.loc)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	row := converter.BookingToRow(b)

	query, args, err := db.Builder.
		Update(bookingsTable).
		SetMap(map[string]any{
			"event_date":         row.EventDate,
			"starts_at":          row.StartsAt,
			"ends_at":            row.EndsAt,
			"services":           row.Services,
			"status":             row.Status,
			"buffer_minutes":     row.BufferMinutes,
			"setup_lead_minutes": row.SetupLeadMinutes,
			"updated_at":         row.UpdatedAt,
		}).
		Where(sq.Eq{"id": row.ID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking update", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := db.Builder.
		Delete(bookingsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking delete", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
