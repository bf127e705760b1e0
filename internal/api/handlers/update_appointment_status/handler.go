package update_appointment_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/estatelink/viewing-service/internal/api/handlers"
	"github.com/estatelink/viewing-service/internal/api/middleware"
	"github.com/estatelink/viewing-service/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи на просмотр"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись на просмотр не найдена"
	msgUnauthorized         = "пользователь не аутентифицирован"
	msgForbidden            = "менять статус записи может только агент объекта"
	msgInvalidTransition    = "недопустимый переход статуса записи"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/status - Missing user identity in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointment, err := h.service.UpdateStatus(r.Context(), appointmentID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/status - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition: appointment_id=%d, status=%s",
				appointmentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated successfully: appointment_id=%d, status=%s, user_id=%d",
		appointmentID, req.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
