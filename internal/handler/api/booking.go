package api

import (
	"net/http"
	"strconv"

	"showtime-booking/internal/domain/admission"
	reqdto "showtime-booking/internal/handler/dto/request"
	resdto "showtime-booking/internal/handler/dto/response"
	"showtime-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
}

func NewBookingHandler(bookingCommands commands.BookingCommands) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
	}
}

func setAdmissionHeaders(c *gin.Context, d admission.Decision) {
	c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	if d.RetryAfterSeconds != nil {
		c.Header("Retry-After", strconv.Itoa(*d.RetryAfterSeconds))
	}
}

// @Summary Request a booking
// @Description Public booking request. Created as pending; throttled per client.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.bookingCommands.Create(c.Request.Context(), req.ToInput(c.ClientIP()))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := resdto.CreateBookingResponse{Booking: resdto.FromBookingView(result.Booking)}
	if result.Admission != nil {
		setAdmissionHeaders(c, *result.Admission)
		remaining := result.Admission.Remaining
		resp.Remaining = &remaining
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Create a booking (staff)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AdminCreateBookingRequest true "Booking"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]any
// @Failure 409 {object} httperr.Response
// @Router /api/admin/bookings [post]
func (h *BookingHandler) AdminCreate(c *gin.Context) {
	var req reqdto.AdminCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.bookingCommands.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateBookingResponse{Booking: resdto.FromBookingView(result.Booking)})
}

// @Summary Change booking status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/admin/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	view, err := h.bookingCommands.UpdateStatus(c.Request.Context(), req.ToInput(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Reschedule a booking
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleRequest true "New slot"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/bookings/{id} [put]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	view, err := h.bookingCommands.Reschedule(c.Request.Context(), req.ToInput(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Delete a booking
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /api/admin/bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.bookingCommands.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid booking ID format")
		return uuid.Nil, false
	}
	return id, true
}
