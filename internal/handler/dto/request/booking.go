package request

import (
	"showtime-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	Date      string   `json:"date" binding:"required"`
	StartTime string   `json:"startTime" binding:"required"`
	EndTime   string   `json:"endTime" binding:"required"`
	Services  []string `json:"services" binding:"required"`
}

func (r CreateBookingRequest) ToInput(clientID string) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Services:  SplitServices(r.Services),
		ClientID:  clientID,
	}
}

type AdminCreateBookingRequest struct {
	CreateBookingRequest
	Status           string `json:"status,omitempty"`
	BufferMinutes    *int   `json:"bufferMinutes,omitempty"`
	SetupLeadMinutes *int   `json:"setupLeadMinutes,omitempty"`
}

func (r AdminCreateBookingRequest) ToInput() commands.CreateBookingInput {
	in := r.CreateBookingRequest.ToInput("")
	in.Admin = true
	in.Status = r.Status
	in.BufferMinutes = r.BufferMinutes
	in.SetupLeadMinutes = r.SetupLeadMinutes
	return in
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateStatusRequest) ToInput(id uuid.UUID) commands.UpdateStatusInput {
	return commands.UpdateStatusInput{ID: id, Status: r.Status}
}

type RescheduleRequest struct {
	Date      string   `json:"date" binding:"required"`
	StartTime string   `json:"startTime" binding:"required"`
	EndTime   string   `json:"endTime" binding:"required"`
	Services  []string `json:"services,omitempty"`
}

func (r RescheduleRequest) ToInput(id uuid.UUID) commands.RescheduleInput {
	return commands.RescheduleInput{
		ID:        id,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Services:  SplitServices(r.Services),
	}
}
