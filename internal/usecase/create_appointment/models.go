package create_appointment

import (
	"time"

	"github.com/estatelink/viewing-service/internal/domain"
	"github.com/estatelink/viewing-service/pkg/types"
)

// Request модель запроса на создание бронирования просмотра
type Request struct {
	ListingID int64            // ID объекта недвижимости
	ClientID  int64            // ID клиента-инициатора (из заголовка аутентификации)
	Date      time.Time        // Дата просмотра (без времени)
	StartTime types.TimeString // Время слота (например, "14:00")
	Notes     *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
	ListingID     int64            // ID объекта
	ClientID      int64            // ID клиента
	AgentID       int64            // ID агента (скопирован с объекта на момент создания)
	ScheduledDate time.Time        // Дата просмотра
	ScheduledTime types.TimeString // Время слота
	Status        string           // Статус (всегда pending для нового бронирования)
	Notes         *string          // Пожелания
	IsUpcoming    bool             // Вычисляется на момент ответа

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
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
