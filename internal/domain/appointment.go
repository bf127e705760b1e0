package domain

import (
	"time"

	"github.com/estatelink/viewing-service/pkg/types"
)

// AppointmentStatus represents the status of a viewing appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a property viewing appointment.
// AgentID is copied from the listing at creation time, so a later
// reassignment of the listing does not change who owns the appointment.
type Appointment struct {
	ID        int64
	ListingID int64
	ClientID  int64
	AgentID   int64

	ScheduledDate time.Time        // date only, time part is ignored
	ScheduledTime types.TimeString // slot time, "HH:MM"
	Status        AppointmentStatus

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transition is permitted
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return !a.IsTerminal()
}

// IsParticipant returns true if the user is the client or the agent of the appointment
func (a *Appointment) IsParticipant(userID int64) bool {
	return a.ClientID == userID || a.AgentID == userID
}

// ScheduledAt combines the appointment date and slot time into a single moment
func (a *Appointment) ScheduledAt() (time.Time, error) {
	return a.ScheduledTime.OnDate(a.ScheduledDate)
}

// IsUpcoming returns true if the appointment is active and its slot is
// strictly after now. Computed at read time, never persisted.
func (a *Appointment) IsUpcoming(now time.Time) bool {
	if !a.IsActive() {
		return false
	}
	at, err := a.ScheduledAt()
	if err != nil {
		return false
	}
	return at.After(now)
}

// AppointmentsFilter фильтр для выборки бронирований просмотров
type AppointmentsFilter struct {
	ClientID  *int64             // Бронирования клиента (взаимоисключающе с AgentID)
	AgentID   *int64             // Бронирования по объектам агента
	Status    *AppointmentStatus // Фильтр по статусу (опционально)
	StartDate *time.Time         // Начало периода (опционально)
	EndDate   *time.Time         // Конец периода (опционально)
}
