package create_appointment

import (
	"errors"
	"net/http"

	"github.com/estatelink/viewing-service/internal/api/handlers"
	"github.com/estatelink/viewing-service/internal/api/middleware"
	createAppointment "github.com/estatelink/viewing-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgUserNotFound       = "пользователь не найден"
	msgListingNotFound    = "объект недвижимости не найден"
	msgListingUnavailable = "объект недоступен для записи на просмотр"
	msgPastDate           = "нельзя записаться на просмотр в прошлом"
	msgSlotConflict       = "выбранный слот уже занят для этого объекта"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user identity in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: client_id=%d, listing_id=%d", clientID, req.ListingID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrListingNotFound):
			h.logger.Warn("POST /appointments - Listing not found: listing_id=%d", req.ListingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, createAppointment.ErrUserNotFound):
			h.logger.Warn("POST /appointments - User not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createAppointment.ErrListingUnavailable):
			h.logger.Warn("POST /appointments - Listing unavailable: listing_id=%d", req.ListingID)
			handlers.RespondBadRequest(w, msgListingUnavailable)

		case errors.Is(err, createAppointment.ErrPastDate):
			h.logger.Warn("POST /appointments - Past date: client_id=%d, listing_id=%d", clientID, req.ListingID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, listing_id=%d", clientID, req.ListingID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, listing_id=%d, error=%v",
				clientID, req.ListingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d, listing_id=%d",
		result.ID, clientID, req.ListingID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
