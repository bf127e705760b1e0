package create_appointment

import (
	"time"

	"github.com/estatelink/viewing-service/internal/domain"
	createAppointment "github.com/estatelink/viewing-service/internal/usecase/create_appointment"
	"github.com/estatelink/viewing-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ListingID     int64   `json:"listingId"`
	ScheduledDate string  `json:"scheduledDate"` // "2026-06-01"
	ScheduledTime string  `json:"scheduledTime"` // "14:00"
	Notes         *string `json:"notes,omitempty"`
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
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	// Парсим дату
	scheduledDate, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	scheduledTime, err := types.NewTimeStringFromString(r.ScheduledTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ListingID: r.ListingID,
		ClientID:  clientID,
		Date:      scheduledDate,
		StartTime: scheduledTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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
