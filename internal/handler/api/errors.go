package api

import (
	"context"
	"net/http"

	resdto "showtime-booking/internal/handler/dto/response"
	"showtime-booking/internal/handler/httperr"
	"showtime-booking/internal/pkg/errs"
	"showtime-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP. Conflicts always carry
// the conflict list and alternatives in detail.
func respondError(c *gin.Context, err error) {
	var conflict *commands.ConflictError
	if errs.As(err, &conflict) {
		var detail any
		if conflict.Result != nil {
			detail = resdto.FromSlotCheckResult(conflict.Result)
		}
		msg := "Requested slot is unavailable"
		if errs.Is(err, errs.ErrSlotTaken) {
			msg = "Requested slot was taken by another booking"
		}
		httperr.AbortWithError(c, http.StatusConflict, err, msg, detail)
		return
	}

	var denied *commands.AdmissionDeniedError
	if errs.As(err, &denied) {
		setAdmissionHeaders(c, denied.Decision)
		httperr.AbortWithError(c, http.StatusTooManyRequests, err,
			"Too many booking attempts. Try again later.",
			gin.H{"retryAfterSeconds": denied.Decision.RetryAfterSeconds, "remaining": denied.Decision.Remaining})
		return
	}

	switch {
	case errs.Is(err, errs.ErrInvalidRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid range", err.Error())
	case errs.Is(err, errs.ErrInvalidInput):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid input", err.Error())
	case errs.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, errs.ErrInvalidStatusTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Status transition not allowed", err.Error())
	case errs.Is(err, errs.ErrStoreUnavailable), errs.Is(err, context.DeadlineExceeded):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Availability temporarily unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func badRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrInvalidInput), msg, err.Error())
}
