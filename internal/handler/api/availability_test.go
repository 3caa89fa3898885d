//go:build unit

package api_test

import (
	"bufio"
	"context"
	"net/http"
	stdhttptest "net/http/httptest"
	"strings"
	"testing"
	"time"

	"showtime-booking/internal/domain/availability"
	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/handler/api"
	resdto "showtime-booking/internal/handler/dto/response"
	"showtime-booking/internal/infra/broadcast"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/usecase/queries"
	"showtime-booking/tests/common/builder"
	"showtime-booking/tests/common/httptest"
	queriesmock "showtime-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	feed        *broadcast.Broadcaster
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.feed = broadcast.NewBroadcaster(nil, nil)
	s.handler = api.NewAvailabilityHandler(s.mockQueries, s.feed)

	s.router.GET("/api/availability", s.handler.GetRange)
	s.router.POST("/api/availability/check", s.handler.CheckSlot)
	s.router.GET("/api/availability/stream", s.handler.Stream)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGetRange() {
	s.Run("success: query params reach the use case", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.mockQueries.EXPECT().CheckRange(gomock.Any(), queries.RangeCheckParams{
			StartDate:       "2024-02-14",
			EndDate:         "2024-02-16",
			IncludeBookings: true,
			Services:        []string{"dj", "lighting"},
		}).Return(&queries.RangeCheckResult{
			Days: []queries.DayAvailability{
				{Date: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), IsAvailable: true, AvailableSlots: 26},
				{Date: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), IsAvailable: true, AvailableSlots: 16, Booking: view},
			},
			TotalDays:     2,
			AvailableDays: 2,
			BookedDays:    1,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/availability?startDate=2024-02-14&endDate=2024-02-16&includeBookings=true&services=dj,lighting", nil, "")

		var body resdto.RangeAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(2, body.TotalDays)
		s.Equal(1, body.BookedDays)
		s.Require().Len(body.Days, 2)
		s.Equal("2024-02-15", body.Days[1].Date)
		s.Require().NotNil(body.Days[1].Booking)
		s.Equal("14:00", body.Days[1].Booking.StartTime)
		s.Nil(body.Days[0].Booking)
	})

	s.Run("error: 400 without dates", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability?startDate=2024-02-14", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
	})

	s.Run("error: 400 on an inverted range", func() {
		s.mockQueries.EXPECT().CheckRange(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("start after end"), errs.ErrInvalidRange))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability?startDate=2024-02-16&endDate=2024-02-14", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid range")
	})

	s.Run("error: 503 when the store is down", func() {
		s.mockQueries.EXPECT().CheckRange(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("timeout"), errs.ErrStoreUnavailable))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability?startDate=2024-02-14&endDate=2024-02-16", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "temporarily unavailable")
	})
}

func (s *AvailabilityHandlerTestSuite) TestCheckSlot() {
	url := "/api/availability/check"
	req := builder.NewBookingBuilder().Between("15:00", "17:00").BuildSlotCheckRequestDTO()

	s.Run("success: available slot", func() {
		slot := builder.NewBookingBuilder().Between("15:00", "17:00").Interval()
		s.mockQueries.EXPECT().CheckSlot(gomock.Any(), queries.SlotCheckParams{
			Date: "2024-02-15", StartTime: "15:00", EndTime: "17:00", Services: []string{"dj"},
		}).Return(&queries.SlotCheckResult{Date: slot.Date(), Slot: slot, Available: true, Conflicts: []queries.ConflictView{}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "")

		var body resdto.SlotCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Available)
		s.Equal("2024-02-15", body.Date)
		s.Equal("17:00", body.EndTime)
		s.Empty(body.Conflicts)
		s.Nil(body.Resolution)
	})

	s.Run("success: blocked slot is still a 200", func() {
		slot := builder.NewBookingBuilder().Between("15:00", "17:00").Interval()
		reasonText := availability.ReasonConflict
		s.mockQueries.EXPECT().CheckSlot(gomock.Any(), gomock.Any()).Return(&queries.SlotCheckResult{
			Date: slot.Date(), Slot: slot, BlockedReason: &reasonText,
			Resolution: &queries.ResolutionView{Outcome: "manual resolution required"},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, "")

		var body resdto.SlotCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Available)
		s.Equal(availability.ReasonConflict, *body.BlockedReason)
		s.Equal("manual resolution required", body.Resolution.Outcome)
	})

	s.Run("error: 400 on a malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"date": "2024-02-15"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *AvailabilityHandlerTestSuite) TestStream() {
	s.Run("error: 400 on a bad date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/availability/stream?date=15-02-2024", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})

	s.Run("delivers events for the subscribed date and unsubscribes on disconnect", func() {
		srv := stdhttptest.NewServer(s.router)
		defer srv.Close()

		date := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/availability/stream?date=2024-02-15", nil)
		s.Require().NoError(err)
		resp, err := srv.Client().Do(req)
		s.Require().NoError(err)
		defer resp.Body.Close()
		s.Equal("text/event-stream", resp.Header.Get("Content-Type"))

		s.Require().Eventually(func() bool { return s.feed.Subscribers(date) == 1 }, time.Second, 10*time.Millisecond)

		b := builder.NewBookingBuilder().BuildDomain()
		s.feed.Notify(ctx, date.AddDate(0, 0, 1), booking.NewEvent(booking.EventCreated, b, date.AddDate(0, 0, 1), date))
		s.feed.Notify(ctx, date, booking.NewEvent(booking.EventStatusChanged, b, date, date))

		reader := bufio.NewReader(resp.Body)
		var events []string
		for len(events) < 2 {
			line, err := reader.ReadString('\n')
			s.Require().NoError(err)
			if name, ok := strings.CutPrefix(strings.TrimSpace(line), "event:"); ok {
				events = append(events, name)
			}
		}
		s.Equal([]string{"subscribed", string(booking.EventStatusChanged)}, events)

		cancel()
		s.Eventually(func() bool { return s.feed.Subscribers(date) == 0 }, time.Second, 10*time.Millisecond)
	})
}
