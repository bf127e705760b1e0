package get_appointment

import (
	"context"

	"github.com/estatelink/viewing-service/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id int64, requesterID int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
