package get_user_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/estatelink/viewing-service/internal/api/handlers"
	"github.com/estatelink/viewing-service/internal/api/middleware"
	"github.com/estatelink/viewing-service/internal/domain"
	"github.com/estatelink/viewing-service/internal/service/appointments"
	"github.com/estatelink/viewing-service/internal/service/appointments/models"
)

const (
	msgInvalidUserID    = "некорректный ID пользователя"
	msgInvalidDateRange = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus    = "некорректный статус записи"
	msgUnauthorized     = "пользователь не аутентифицирован"
	msgForbidden        = "просматривать можно только собственные записи"
	msgUserNotFound     = "пользователь не найден"
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

// Handle GET /api/v1/users/{userId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем userId из URL
	vars := mux.Vars(r)
	userIDStr := vars["userId"]

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Смотреть чужие записи нельзя: userId в пути должен совпадать
	// с аутентифицированным пользователем
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/appointments - Missing user identity in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if requesterID != userID {
		h.logger.Warn("GET /users/{userId}/appointments - Access denied: user_id=%d, requester_id=%d",
			userID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Формируем запрос к сервису из query параметров
	serviceReq := &models.GetUserAppointmentsRequest{
		UserID: userID,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}

	if startDate := r.URL.Query().Get("startDate"); startDate != "" {
		parsed, err := time.Parse(domain.DateFormat, startDate)
		if err != nil {
			h.logger.Warn("GET /users/{userId}/appointments - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		serviceReq.StartDate = &parsed
	}

	if endDate := r.URL.Query().Get("endDate"); endDate != "" {
		parsed, err := time.Parse(domain.DateFormat, endDate)
		if err != nil {
			h.logger.Warn("GET /users/{userId}/appointments - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		serviceReq.EndDate = &parsed
	}

	// Получаем записи пользователя
	result, err := h.service.GetUserAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrUserNotFound):
			h.logger.Warn("GET /users/{userId}/appointments - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/{userId}/appointments - Invalid status filter: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{userId}/appointments - Failed to get appointments: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/appointments - Appointments retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
