package request

import (
	"strings"

	"showtime-booking/internal/usecase/queries"
)

type RangeAvailabilityQuery struct {
	StartDate       string   `form:"startDate" binding:"required"`
	EndDate         string   `form:"endDate" binding:"required"`
	IncludeBookings bool     `form:"includeBookings"`
	Services        []string `form:"services"`
}

func (q RangeAvailabilityQuery) ToParams() queries.RangeCheckParams {
	return queries.RangeCheckParams{
		StartDate:       q.StartDate,
		EndDate:         q.EndDate,
		IncludeBookings: q.IncludeBookings,
		Services:        SplitServices(q.Services),
	}
}

type SlotCheckRequest struct {
	Date      string   `json:"date" binding:"required"`
	StartTime string   `json:"startTime" binding:"required"`
	EndTime   string   `json:"endTime" binding:"required"`
	Services  []string `json:"services" binding:"required"`
}

func (r SlotCheckRequest) ToParams() queries.SlotCheckParams {
	return queries.SlotCheckParams{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Services:  SplitServices(r.Services),
	}
}

type StreamQuery struct {
	Date string `form:"date" binding:"required"`
}

// SplitServices accepts both repeated values and comma-separated lists.
func SplitServices(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
