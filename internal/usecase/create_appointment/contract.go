package create_appointment

import (
	"context"
	"time"

	"github.com/estatelink/viewing-service/internal/domain"
	"github.com/estatelink/viewing-service/internal/integrations/listingservice"
	"github.com/estatelink/viewing-service/internal/integrations/userservice"
	"github.com/estatelink/viewing-service/pkg/types"
)

// AppointmentRepository интерфейс репозитория бронирований просмотров
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	HasActiveSlot(ctx context.Context, listingID int64, date time.Time, slot types.TimeString, excludeID *int64) (bool, error)
}

// ListingServiceClient интерфейс клиента для ListingService
type ListingServiceClient interface {
	GetListing(ctx context.Context, listingID int64) (*listingservice.Listing, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
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
