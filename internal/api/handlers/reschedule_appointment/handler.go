package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/estatelink/viewing-service/internal/api/handlers"
	"github.com/estatelink/viewing-service/internal/api/middleware"
	rescheduleAppointment "github.com/estatelink/viewing-service/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи на просмотр"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound             = "запись на просмотр не найдена"
	msgUnauthorized         = "пользователь не аутентифицирован"
	msgForbidden            = "перенести запись может только её участник"
	msgAlreadyTerminal      = "запись уже завершена или отменена"
	msgPastDate             = "нельзя перенести просмотр в прошлое"
	msgSlotConflict         = "выбранный слот уже занят для этого объекта"
	msgInvalidInput         = "некорректные данные переноса"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing user identity in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, userID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleAppointment.ErrSlotConflict):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot conflict: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment is terminal: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgAlreadyTerminal)

		case errors.Is(err, rescheduleAppointment.ErrPastDate):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Past date: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled successfully: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
