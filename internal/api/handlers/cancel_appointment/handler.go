package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/estatelink/viewing-service/internal/api/handlers"
	"github.com/estatelink/viewing-service/internal/api/middleware"
	"github.com/estatelink/viewing-service/internal/service/appointments"
	"github.com/estatelink/viewing-service/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи на просмотр"
	msgNotFound             = "запись на просмотр не найдена"
	msgUnauthorized         = "пользователь не аутентифицирован"
	msgForbidden            = "отменить запись может только её участник"
	msgAlreadyTerminal      = "запись уже завершена или отменена"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing user identity in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	appointment, err := h.service.Cancel(r.Context(), appointmentID, &models.CancelAppointmentRequest{
		RequesterID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment is terminal: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgAlreadyTerminal)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
