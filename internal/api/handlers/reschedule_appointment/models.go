package reschedule_appointment

import (
	"time"

	"github.com/estatelink/viewing-service/internal/domain"
	rescheduleAppointment "github.com/estatelink/viewing-service/internal/usecase/reschedule_appointment"
	"github.com/estatelink/viewing-service/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	ScheduledDate string `json:"scheduledDate"` // "2026-06-01"
	ScheduledTime string `json:"scheduledTime"` // "14:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	ListingID     int64   `json:"listingId"`
	ClientID      int64   `json:"clientId"`
	AgentID       int64   `json:"agentId"`
	ScheduledDate string  `json:"scheduledDate"`
	ScheduledTime string  `json:"scheduledTime"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes,omitempty"`
	IsUpcoming    bool    `json:"isUpcoming"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, requesterID int64) (*rescheduleAppointment.Request, error) {
	scheduledDate, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, err
	}

	scheduledTime, err := types.NewTimeStringFromString(r.ScheduledTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		RequesterID:   requesterID,
		Date:          scheduledDate,
		StartTime:     scheduledTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		ListingID:     resp.ListingID,
		ClientID:      resp.ClientID,
		AgentID:       resp.AgentID,
		ScheduledDate: resp.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime: resp.ScheduledTime.String(),
		Status:        resp.Status,
		Notes:         resp.Notes,
		IsUpcoming:    resp.IsUpcoming,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
