//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"showtime-booking/internal/domain/admission"
	"showtime-booking/internal/domain/availability"
	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/infra"
	"showtime-booking/internal/pkg/clock"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/pkg/metrics"
	"showtime-booking/internal/usecase/commands"
	"showtime-booking/internal/usecase/shared"
	"showtime-booking/tests/common/builder"
	sharedmock "showtime-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	eventDay = time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	now      = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
)

type BookingCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	store    *sharedmock.MockBookingReadStore
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	repo     *sharedmock.MockBookingRepository
	gate     *sharedmock.MockAdmissionGate
	cache    *sharedmock.MockCacheInvalidator
	notifier *sharedmock.MockAvailabilityNotifier
	metrics  *metrics.Metrics
	commands commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.store = sharedmock.NewMockBookingReadStore(s.ctrl)
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.repo = sharedmock.NewMockBookingRepository(s.ctrl)
	s.gate = sharedmock.NewMockAdmissionGate(s.ctrl)
	s.cache = sharedmock.NewMockCacheInvalidator(s.ctrl)
	s.notifier = sharedmock.NewMockAvailabilityNotifier(s.ctrl)
	s.metrics = metrics.New("commands_test")

	policy := availability.DefaultPolicy()
	policy.SetupLeadMinutes = 30
	policy.SearchWindowDays = 2
	engine, err := availability.NewEngine(policy, availability.DefaultBusinessHours(), time.UTC)
	s.Require().NoError(err)

	s.commands = commands.NewBookingCommands(
		engine, s.store, s.uow, s.gate, s.cache, s.notifier,
		clock.NewMockClock(now), nil, s.metrics,
	)

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().Bookings().Return(s.repo).AnyTimes()
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func createInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		Date:      "2024-02-15",
		StartTime: "15:00",
		EndTime:   "17:00",
		Services:  []string{"dj"},
		ClientID:  "203.0.113.7",
	}
}

func (s *BookingCommandsTestSuite) expectGate(d admission.Decision, err error) {
	s.gate.EXPECT().Mode().Return(admission.ModeEnforce).AnyTimes()
	s.gate.EXPECT().Limit().Return(5).AnyTimes()
	s.gate.EXPECT().Check(gomock.Any(), "203.0.113.7", admission.ActionCreateBooking).Return(d, err)
}

func (s *BookingCommandsTestSuite) expectMutation(dates ...string) {
	for _, d := range dates {
		date, err := booking.ParseDate(d, time.UTC)
		s.Require().NoError(err)
		s.cache.EXPECT().Invalidate(booking.SingleDay(date)).Return(1)
		s.notifier.EXPECT().Notify(gomock.Any(), date, gomock.Any()).
			Do(func(_ context.Context, _ time.Time, ev booking.Event) {
				s.Equal(d, ev.Date)
			})
	}
}

// ================================================================================
// Create
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreate() {
	s.Run("success: pending booking, cache dropped before subscribers hear", func() {
		s.expectGate(admission.Decision{Allowed: true, Remaining: 4}, nil)
		s.store.EXPECT().BookingsOverlapping(gomock.Any(), booking.Around(eventDay, 2)).Return(nil, nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, b *booking.Booking) {
				s.Equal(booking.StatusPending, b.Status())
			}).Return(nil)
		gomock.InOrder(
			s.cache.EXPECT().Invalidate(booking.SingleDay(eventDay)).Return(2),
			s.notifier.EXPECT().Notify(gomock.Any(), eventDay, gomock.Any()),
		)

		res, err := s.commands.Create(s.ctx, createInput())
		s.Require().NoError(err)
		s.Equal(booking.StatusPending, res.Booking.Status)
		s.Require().NotNil(res.Admission)
		s.Equal(4, res.Admission.Remaining)
	})

	s.Run("slot held by a confirmed booking", func() {
		confirmed := builder.NewBookingBuilder().Between("14:00", "18:00").BuildDomain()
		s.expectGate(admission.Decision{Allowed: true, Remaining: 3}, nil)
		s.store.EXPECT().BookingsOverlapping(gomock.Any(), gomock.Any()).Return([]*booking.Booking{confirmed}, nil)

		_, err := s.commands.Create(s.ctx, createInput())
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrSlotUnavailable))

		var conflict *commands.ConflictError
		s.Require().True(errs.As(err, &conflict))
		s.False(conflict.Result.Available)
		s.Require().Len(conflict.Result.Conflicts, 1)
		s.Equal(availability.KindDirectOverlap, conflict.Result.Conflicts[0].Type)
		s.NotEmpty(conflict.Result.Resolution.Alternatives)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.BookingConflicts.WithLabelValues("check")))
	})

	s.Run("losing a race to the constraint reports the new holder", func() {
		winner := builder.NewBookingBuilder().Between("15:00", "17:00").BuildDomain()
		s.expectGate(admission.Decision{Allowed: true, Remaining: 4}, nil)
		gomock.InOrder(
			s.store.EXPECT().BookingsOverlapping(gomock.Any(), gomock.Any()).Return(nil, nil),
			s.store.EXPECT().BookingsOverlapping(gomock.Any(), gomock.Any()).Return([]*booking.Booking{winner}, nil),
		)
		pgErr := &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_confirmed_no_overlap"}
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(infra.WrapRepoErr("failed to insert booking", pgErr))

		_, err := s.commands.Create(s.ctx, createInput())
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrSlotTaken))

		var conflict *commands.ConflictError
		s.Require().True(errs.As(err, &conflict))
		s.Require().NotNil(conflict.Result)
		s.Require().Len(conflict.Result.Conflicts, 1)
		s.Equal(winner.ID(), conflict.Result.Conflicts[0].BookingID)
		s.Equal(availability.KindDirectOverlap, conflict.Result.Conflicts[0].Type)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.BookingConflicts.WithLabelValues("persist")))
	})

	s.Run("admission denied never reaches the store", func() {
		retry := 120
		s.expectGate(admission.Decision{Allowed: false, RetryAfterSeconds: &retry}, nil)

		_, err := s.commands.Create(s.ctx, createInput())
		s.True(errs.Is(err, errs.ErrAdmissionDenied))

		var denied *commands.AdmissionDeniedError
		s.Require().True(errs.As(err, &denied))
		s.Equal(120, *denied.Decision.RetryAfterSeconds)
	})

	s.Run("gate failure fails open", func() {
		s.expectGate(admission.Decision{}, errors.New("redis: connection refused"))
		s.store.EXPECT().BookingsOverlapping(gomock.Any(), gomock.Any()).Return(nil, nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.expectMutation("2024-02-15")

		res, err := s.commands.Create(s.ctx, createInput())
		s.Require().NoError(err)
		s.Require().NotNil(res.Admission)
		s.True(res.Admission.Allowed)
		s.Equal(5, res.Admission.Remaining)
	})

	s.Run("admin bookings skip the gate and may confirm directly", func() {
		in := createInput()
		in.Admin = true
		in.Status = "confirmed"
		buffer := 0
		in.BufferMinutes = &buffer

		s.store.EXPECT().BookingsOverlapping(gomock.Any(), gomock.Any()).Return(nil, nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, b *booking.Booking) {
				s.Equal(booking.StatusConfirmed, b.Status())
				s.Equal(0, *b.Overrides().BufferMinutes)
			}).Return(nil)
		s.expectMutation("2024-02-15")

		res, err := s.commands.Create(s.ctx, in)
		s.Require().NoError(err)
		s.Nil(res.Admission)
	})

	s.Run("invalid input", func() {
		cases := []struct {
			name   string
			mutate func(*commands.CreateBookingInput)
			errIs  error
		}{
			{name: "bad date", mutate: func(in *commands.CreateBookingInput) { in.Date = "15/02/2024" }, errIs: errs.ErrInvalidInput},
			{name: "end before start", mutate: func(in *commands.CreateBookingInput) { in.EndTime = "14:00" }, errIs: errs.ErrInvalidRange},
			{name: "unknown service", mutate: func(in *commands.CreateBookingInput) { in.Services = []string{"fireworks"} }, errIs: errs.ErrInvalidInput},
			{name: "no services", mutate: func(in *commands.CreateBookingInput) { in.Services = nil }, errIs: errs.ErrInvalidInput},
			{name: "past date", mutate: func(in *commands.CreateBookingInput) { in.Date = "2024-01-10" }, errIs: errs.ErrInvalidInput},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				in := createInput()
				tc.mutate(&in)
				_, err := s.commands.Create(s.ctx, in)
				s.True(errs.Is(err, tc.errIs), "got %v", err)
			})
		}
	})

	s.Run("store outage", func() {
		s.expectGate(admission.Decision{Allowed: true, Remaining: 4}, nil)
		s.store.EXPECT().BookingsOverlapping(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := s.commands.Create(s.ctx, createInput())
		s.True(errs.Is(err, errs.ErrStoreUnavailable))
	})
}

// ================================================================================
// UpdateStatus
// ================================================================================

func (s *BookingCommandsTestSuite) TestUpdateStatus() {
	s.Run("confirming a pending booking that is still free", func() {
		pending := builder.NewBookingBuilder().Between("15:00", "17:00").WithStatus(booking.StatusPending).BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), pending.ID()).Return(pending, nil)
		s.store.EXPECT().BookingsOverlapping(gomock.Any(), gomock.Any()).Return([]*booking.Booking{pending}, nil)
		s.repo.EXPECT().Update(gomock.Any(), pending).Return(nil)
		s.expectMutation("2024-02-15")

		view, err := s.commands.UpdateStatus(s.ctx, commands.UpdateStatusInput{ID: pending.ID(), Status: "confirmed"})
		s.Require().NoError(err)
		s.Equal(booking.StatusConfirmed, view.Status)
	})

	s.Run("confirming over a confirmed booking is refused", func() {
		pending := builder.NewBookingBuilder().Between("15:00", "17:00").WithStatus(booking.StatusPending).BuildDomain()
		other := builder.NewBookingBuilder().Between("16:00", "20:00").BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), pending.ID()).Return(pending, nil)
		s.store.EXPECT().BookingsOverlapping(gomock.Any(), gomock.Any()).Return([]*booking.Booking{pending, other}, nil)

		_, err := s.commands.UpdateStatus(s.ctx, commands.UpdateStatusInput{ID: pending.ID(), Status: "confirmed"})
		s.True(errs.Is(err, errs.ErrSlotUnavailable))
		s.Equal(booking.StatusPending, pending.Status())
	})

	s.Run("confirm rejected by the exclusion constraint", func() {
		pending := builder.NewBookingBuilder().Between("15:00", "17:00").WithStatus(booking.StatusPending).BuildDomain()
		racer := builder.NewBookingBuilder().Between("15:00", "17:00").BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), pending.ID()).Return(pending, nil)
		gomock.InOrder(
			s.store.EXPECT().BookingsOverlapping(gomock.Any(), gomock.Any()).Return([]*booking.Booking{pending}, nil),
			s.store.EXPECT().BookingsOverlapping(gomock.Any(), gomock.Any()).Return([]*booking.Booking{pending, racer}, nil),
		)
		s.repo.EXPECT().Update(gomock.Any(), pending).
			Return(infra.WrapRepoErr("failed to update booking", &pgconn.PgError{Code: "23P01"}))

		_, err := s.commands.UpdateStatus(s.ctx, commands.UpdateStatusInput{ID: pending.ID(), Status: "confirmed"})
		s.True(errs.Is(err, errs.ErrSlotTaken))
	})

	s.Run("cancelling needs no availability check", func() {
		confirmed := builder.NewBookingBuilder().BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), confirmed.ID()).Return(confirmed, nil)
		s.repo.EXPECT().Update(gomock.Any(), confirmed).Return(nil)
		s.expectMutation("2024-02-15")

		view, err := s.commands.UpdateStatus(s.ctx, commands.UpdateStatusInput{ID: confirmed.ID(), Status: "cancelled"})
		s.Require().NoError(err)
		s.Equal(booking.StatusCancelled, view.Status)
	})

	s.Run("illegal transition", func() {
		cancelled := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), cancelled.ID()).Return(cancelled, nil)

		_, err := s.commands.UpdateStatus(s.ctx, commands.UpdateStatusInput{ID: cancelled.ID(), Status: "completed"})
		s.True(errs.Is(err, errs.ErrInvalidStatusTransition))
	})

	s.Run("unknown booking", func() {
		id := uuid.New()
		s.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		_, err := s.commands.UpdateStatus(s.ctx, commands.UpdateStatusInput{ID: id, Status: "cancelled"})
		s.True(errs.Is(err, errs.ErrBookingNotFound))
	})
}

// ================================================================================
// Reschedule and Delete
// ================================================================================

func (s *BookingCommandsTestSuite) TestReschedule() {
	s.Run("moving to another day refreshes both days", func() {
		b := builder.NewBookingBuilder().Between("14:00", "18:00").BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil)
		// the booking's own slot must not block its new one
		s.store.EXPECT().BookingsOverlapping(gomock.Any(), booking.Around(eventDay.AddDate(0, 0, 1), 2)).Return([]*booking.Booking{b}, nil)
		s.repo.EXPECT().Update(gomock.Any(), b).Return(nil)
		s.expectMutation("2024-02-15", "2024-02-16")

		view, err := s.commands.Reschedule(s.ctx, commands.RescheduleInput{
			ID: b.ID(), Date: "2024-02-16", StartTime: "14:00", EndTime: "18:00",
		})
		s.Require().NoError(err)
		s.True(view.Date.Equal(eventDay.AddDate(0, 0, 1)))
	})

	s.Run("cancelled bookings stay put", func() {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil)

		_, err := s.commands.Reschedule(s.ctx, commands.RescheduleInput{
			ID: b.ID(), Date: "2024-02-16", StartTime: "14:00", EndTime: "18:00",
		})
		s.True(errs.Is(err, errs.ErrInvalidStatusTransition))
	})
}

func (s *BookingCommandsTestSuite) TestDelete() {
	s.Run("success", func() {
		b := builder.NewBookingBuilder().BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil)
		s.repo.EXPECT().Delete(gomock.Any(), b.ID()).Return(nil)
		s.expectMutation("2024-02-15")

		s.Require().NoError(s.commands.Delete(s.ctx, b.ID()))
	})

	s.Run("database failure is classified", func() {
		b := builder.NewBookingBuilder().BuildDomain()
		s.repo.EXPECT().FindByID(gomock.Any(), b.ID()).Return(b, nil)
		s.repo.EXPECT().Delete(gomock.Any(), b.ID()).Return(infra.WrapRepoErr("failed to delete booking", errors.New("conn reset")))

		err := s.commands.Delete(s.ctx, b.ID())
		s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}
