package reschedule_appointment

import (
	"context"
	"time"

	"github.com/estatelink/viewing-service/internal/domain"
	"github.com/estatelink/viewing-service/pkg/types"
)

// AppointmentRepository интерфейс репозитория бронирований просмотров
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	HasActiveSlot(ctx context.Context, listingID int64, date time.Time, slot types.TimeString, excludeID *int64) (bool, error)
	Reschedule(ctx context.Context, id int64, date time.Time, slot types.TimeString) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
