//go:build unit

package repository_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"showtime-booking/internal/infra"
	"showtime-booking/internal/infra/repository"
	"showtime-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Create Booking Tests
// =============================================================================

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		execErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "error: connection failure", execErr: errors.New("connection reset"), expectKind: infra.KindDBFailure},
		{
			name:       "error: exclusion constraint",
			execErr:    &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_confirmed_no_overlap"},
			expectKind: infra.KindConflict,
		},
		{name: "error: duplicate id", execErr: &pgconn.PgError{Code: "23505"}, expectKind: infra.KindDuplicateKey},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &recordingDBTX{execErr: tc.execErr, rowsAffected: 1}
			repo := repository.NewBookingRepository(fake, time.UTC)
			b := builder.NewBookingBuilder().WithBuffer(0).BuildDomain()

			err := repo.Create(ctx, b)

			if tc.expectKind == "" {
				require.NoError(t, err)
				require.Len(t, fake.statements, 1)
				assert.True(t, strings.HasPrefix(fake.statements[0], "INSERT INTO bookings"))
				assert.Contains(t, fake.args[0], b.ID())
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind), "got %v", err)
		})
	}
}

func TestBookingRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder().BuildDomain()

	t.Run("update touches one row", func(t *testing.T) {
		fake := &recordingDBTX{rowsAffected: 1}
		require.NoError(t, repository.NewBookingRepository(fake, time.UTC).Update(ctx, b))
		assert.True(t, strings.HasPrefix(fake.statements[0], "UPDATE bookings SET"))
		assert.Contains(t, fake.statements[0], "WHERE id = $")
	})

	t.Run("update of a missing row", func(t *testing.T) {
		err := repository.NewBookingRepository(&recordingDBTX{}, time.UTC).Update(ctx, b)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("confirm rejected by constraint", func(t *testing.T) {
		fake := &recordingDBTX{execErr: &pgconn.PgError{Code: "23P01"}}
		err := repository.NewBookingRepository(fake, time.UTC).Update(ctx, b)
		assert.True(t, infra.IsConflict(err))
	})

	t.Run("delete of a missing row", func(t *testing.T) {
		err := repository.NewBookingRepository(&recordingDBTX{}, time.UTC).Delete(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestBookingRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		fake := &recordingDBTX{row: errRow{err: pgx.ErrNoRows}}
		_, err := repository.NewBookingRepository(fake, time.UTC).FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.True(t, strings.HasSuffix(fake.statements[0], "FOR UPDATE"))
	})

	t.Run("scan failure", func(t *testing.T) {
		fake := &recordingDBTX{row: errRow{err: errors.New("conn closed")}}
		_, err := repository.NewBookingRepository(fake, time.UTC).FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

type recordingDBTX struct {
	statements   []string
	args         [][]any
	execErr      error
	rowsAffected int64
	row          pgx.Row
}

func (m *recordingDBTX) Exec(_ context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	m.statements = append(m.statements, sql)
	m.args = append(m.args, arguments)
	if m.execErr != nil {
		return pgconn.CommandTag{}, m.execErr
	}
	return pgconn.NewCommandTag("UPDATE " + strconv.FormatInt(m.rowsAffected, 10)), nil
}

func (m *recordingDBTX) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("recordingDBTX.Query was called unexpectedly")
}

func (m *recordingDBTX) QueryRow(_ context.Context, sql string, arguments ...any) pgx.Row {
	m.statements = append(m.statements, sql)
	m.args = append(m.args, arguments)
	return m.row
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
