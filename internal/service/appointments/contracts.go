package appointments

import (
	"context"
	"time"

	"github.com/estatelink/viewing-service/internal/domain"
	"github.com/estatelink/viewing-service/internal/integrations/userservice"
)

// AppointmentRepository интерфейс репозитория бронирований просмотров
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
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
