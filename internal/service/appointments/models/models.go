package models

import (
	"errors"
	"time"

	"github.com/estatelink/viewing-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	RequesterID int64  `json:"requesterId"`
	Status      string `json:"status"`
}

// CancelAppointmentRequest запрос на отмену бронирования
type CancelAppointmentRequest struct {
	RequesterID int64 `json:"requesterId"`
}

// GetUserAppointmentsRequest запрос на получение бронирований пользователя.
// Роль пользователя определяет выборку: клиент видит свои бронирования,
// агент - бронирования по своим объектам.
type GetUserAppointmentsRequest struct {
	UserID    int64      `json:"userId"`
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// Response модели

// AppointmentResponse ответ с данными бронирования просмотра
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	ListingID     int64   `json:"listingId"`
	ClientID      int64   `json:"clientId"`
	AgentID       int64   `json:"agentId"`
	ScheduledDate string  `json:"scheduledDate"` // "2026-06-01"
	ScheduledTime string  `json:"scheduledTime"` // "14:00"
	Status        string  `json:"status"`
	Notes         *string `json:"notes,omitempty"`
	IsUpcoming    bool    `json:"isUpcoming"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком бронирований
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO.
// isUpcoming вычисляется на момент ответа и не хранится в БД.
func FromDomainAppointment(a *domain.Appointment, now time.Time) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:            a.ID,
		ListingID:     a.ListingID,
		ClientID:      a.ClientID,
		AgentID:       a.AgentID,
		ScheduledDate: a.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime: a.ScheduledTime.String(),
		Status:        string(a.Status),
		Notes:         a.Notes,
		IsUpcoming:    a.IsUpcoming(now),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment, now time.Time) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt, now); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией.
// Неизвестные значения никогда не приводятся к дефолту.
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
