package reschedule_appointment

import (
	"time"

	"github.com/estatelink/viewing-service/internal/domain"
	"github.com/estatelink/viewing-service/pkg/types"
)

// Request модель запроса на перенос бронирования просмотра
type Request struct {
	AppointmentID int64            // ID бронирования
	RequesterID   int64            // ID инициатора (клиент или агент бронирования)
	Date          time.Time        // Новая дата просмотра
	StartTime     types.TimeString // Новое время слота
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID            int64
	ListingID     int64
	ClientID      int64
	AgentID       int64
	ScheduledDate time.Time
	ScheduledTime types.TimeString
	Status        string
	Notes         *string
	IsUpcoming    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomain конвертирует domain модель в response
func fromDomain(appt *domain.Appointment, now time.Time) *Response {
	return &Response{
		ID:            appt.ID,
		ListingID:     appt.ListingID,
		ClientID:      appt.ClientID,
		AgentID:       appt.AgentID,
		ScheduledDate: appt.ScheduledDate,
		ScheduledTime: appt.ScheduledTime,
		Status:        string(appt.Status),
		Notes:         appt.Notes,
		IsUpcoming:    appt.IsUpcoming(now),
		CreatedAt:     appt.CreatedAt,
		UpdatedAt:     appt.UpdatedAt,
	}
}
