package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"showtime-booking/internal/domain/booking"
	reqdto "showtime-booking/internal/handler/dto/request"
	resdto "showtime-booking/internal/handler/dto/response"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/usecase/queries"
	"showtime-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const (
	streamBuffer    = 16
	streamKeepAlive = 25 * time.Second
)

var errSlowSubscriber = errs.New("subscriber buffer full, event dropped")

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
	feed                shared.AvailabilityFeed
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries, feed shared.AvailabilityFeed) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
		feed:                feed,
	}
}

// @Summary Check availability over a date range
// @Description Per-day availability between startDate and endDate (inclusive)
// @Tags availability
// @Produce json
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string true "YYYY-MM-DD"
// @Param includeBookings query bool false "Attach the day's booking"
// @Param services query []string false "Requested services"
// @Success 200 {object} resdto.RangeAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/availability [get]
func (h *AvailabilityHandler) GetRange(c *gin.Context) {
	var q reqdto.RangeAvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err, "Invalid query parameters")
		return
	}

	result, err := h.availabilityQueries.CheckRange(c.Request.Context(), q.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRangeCheckResult(result))
}

// @Summary Check one time slot
// @Description Availability, conflicts and alternatives for a slot
// @Tags availability
// @Accept json
// @Produce json
// @Param request body reqdto.SlotCheckRequest true "Slot"
// @Success 200 {object} resdto.SlotCheckResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/availability/check [post]
func (h *AvailabilityHandler) CheckSlot(c *gin.Context) {
	var req reqdto.SlotCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.availabilityQueries.CheckSlot(c.Request.Context(), req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotCheckResult(result))
}

// @Summary Follow availability changes
// @Description Server-sent events for booking mutations on one date. Best effort: slow clients miss events.
// @Tags availability
// @Produce text/event-stream
// @Param date query string true "YYYY-MM-DD"
// @Router /api/availability/stream [get]
func (h *AvailabilityHandler) Stream(c *gin.Context) {
	var q reqdto.StreamQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err, "Invalid query parameters")
		return
	}
	date, err := booking.ParseDate(q.Date, time.UTC)
	if err != nil {
		badRequest(c, err, "Invalid date")
		return
	}

	events := make(chan booking.Event, streamBuffer)
	dispose := h.feed.Subscribe(date, func(_ context.Context, ev booking.Event) error {
		select {
		case events <- ev:
			return nil
		default:
			return errSlowSubscriber
		}
	})
	defer dispose()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	c.SSEvent("subscribed", gin.H{"date": date.Format(booking.DateLayout)})
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-events:
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}
