package response

import (
	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type IntervalResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func FromInterval(i booking.Interval) IntervalResponse {
	date := i.Date()
	return IntervalResponse{
		Date:      date.Format(booking.DateLayout),
		StartTime: booking.FormatClock(date, i.Start()),
		EndTime:   booking.FormatClock(date, i.End()),
	}
}

func fromIntervals(list []booking.Interval) []IntervalResponse {
	out := make([]IntervalResponse, len(list))
	for i, iv := range list {
		out[i] = FromInterval(iv)
	}
	return out
}

type DayAvailabilityResponse struct {
	Date           string           `json:"date"`
	IsAvailable    bool             `json:"isAvailable"`
	BlockedReason  *string          `json:"blockedReason,omitempty"`
	AvailableSlots int              `json:"availableSlots"`
	Booking        *BookingResponse `json:"booking,omitempty"`
}

type RangeAvailabilityResponse struct {
	Days          []DayAvailabilityResponse `json:"days"`
	TotalDays     int                       `json:"totalDays"`
	AvailableDays int                       `json:"availableDays"`
	BookedDays    int                       `json:"bookedDays"`
}

func FromRangeCheckResult(r *queries.RangeCheckResult) *RangeAvailabilityResponse {
	days := make([]DayAvailabilityResponse, len(r.Days))
	for i, d := range r.Days {
		days[i] = DayAvailabilityResponse{
			Date:           d.Date.Format(booking.DateLayout),
			IsAvailable:    d.IsAvailable,
			BlockedReason:  d.BlockedReason,
			AvailableSlots: d.AvailableSlots,
		}
		if d.Booking != nil {
			days[i].Booking = FromBookingView(d.Booking)
		}
	}
	return &RangeAvailabilityResponse{
		Days:          days,
		TotalDays:     r.TotalDays,
		AvailableDays: r.AvailableDays,
		BookedDays:    r.BookedDays,
	}
}

type ConflictResponse struct {
	Type          string             `json:"type"`
	BookingID     uuid.UUID          `json:"bookingId"`
	BookingStatus string             `json:"bookingStatus"`
	StartTime     string             `json:"startTime"`
	EndTime       string             `json:"endTime"`
	Hard          bool               `json:"hard"`
	Message       string             `json:"message"`
	Alternatives  []IntervalResponse `json:"alternatives"`
}

type ResolutionResponse struct {
	Resolved     bool               `json:"resolved"`
	Outcome      string             `json:"outcome"`
	Alternatives []IntervalResponse `json:"alternatives"`
}

type SlotCheckResponse struct {
	IntervalResponse
	Available     bool                `json:"available"`
	BlockedReason *string             `json:"blockedReason,omitempty"`
	Conflicts     []ConflictResponse  `json:"conflicts"`
	Resolution    *ResolutionResponse `json:"resolution,omitempty"`
}

func FromSlotCheckResult(r *queries.SlotCheckResult) *SlotCheckResponse {
	out := &SlotCheckResponse{
		IntervalResponse: FromInterval(r.Slot),
		Available:        r.Available,
		BlockedReason:    r.BlockedReason,
		Conflicts:        make([]ConflictResponse, len(r.Conflicts)),
	}
	for i, c := range r.Conflicts {
		date := booking.DateOf(c.Start)
		out.Conflicts[i] = ConflictResponse{
			Type:          c.Type.String(),
			BookingID:     c.BookingID,
			BookingStatus: c.BookingStatus.String(),
			StartTime:     booking.FormatClock(date, c.Start),
			EndTime:       booking.FormatClock(date, c.End),
			Hard:          c.Hard,
			Message:       c.Message,
			Alternatives:  fromIntervals(c.Alternatives),
		}
	}
	if r.Resolution != nil {
		out.Resolution = &ResolutionResponse{
			Resolved:     r.Resolution.Resolved,
			Outcome:      r.Resolution.Outcome,
			Alternatives: fromIntervals(r.Resolution.Alternatives),
		}
	}
	return out
}
