package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/estatelink/viewing-service/internal/domain"
	apptRepo "github.com/estatelink/viewing-service/internal/infra/storage/appointment"
	listingClient "github.com/estatelink/viewing-service/internal/integrations/listingservice"
	userClient "github.com/estatelink/viewing-service/internal/integrations/userservice"
)

// UseCase use case для создания бронирования просмотра
type UseCase struct {
	appointmentRepo AppointmentRepository
	listingClient   ListingServiceClient
	userClient      UserServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	listingClient ListingServiceClient,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		listingClient:   listingClient,
		userClient:      userClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования просмотра.
// Проверка конфликта слота и вставка выполняются в сериализуемой
// транзакции, чтобы закрыть гонку между конкурирующими созданиями.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, listing=%d, date=%s, time=%s",
		req.ClientID, req.ListingID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование пользователя-инициатора
	if _, err := uc.userClient.GetUser(ctx, req.ClientID); err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateAppointment: user id=%d not found", req.ClientID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get user id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 4. Получаем объект недвижимости
	rawListing, err := uc.listingClient.GetListing(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, listingClient.ErrListingNotFound) {
			uc.logger.Warn("CreateAppointment: listing id=%d not found", req.ListingID)
			return nil, ErrListingNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get listing id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: failed to get listing: %v", ErrInternal, err)
	}
	listing := rawListing.ToDomain()

	// 5. Availability Gate: объект должен принимать бронирования
	if !listing.IsBookable() {
		uc.logger.Warn("CreateAppointment: listing id=%d is not bookable (status=%s, deleted=%t)",
			listing.ID, listing.Status, listing.IsDeleted)
		return nil, ErrListingUnavailable
	}

	// 6. Валидация даты и времени: слот должен быть строго в будущем
	if err := validateSlotInFuture(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: slot time validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 7. Проверка конфликта и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Проверяем, что слот не занят активным бронированием (FOR UPDATE)
		occupied, err := uc.appointmentRepo.HasActiveSlot(txCtx, req.ListingID, req.Date, req.StartTime, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if occupied {
			uc.logger.Warn("CreateAppointment: slot conflict for listing=%d, date=%s, time=%s",
				req.ListingID, req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotConflict
		}

		// 7.2. Создаем бронирование: статус всегда pending,
		// агент копируется с объекта на момент создания
		appointment := &domain.Appointment{
			ListingID:     req.ListingID,
			ClientID:      req.ClientID,
			AgentID:       listing.AgentID,
			ScheduledDate: req.Date,
			ScheduledTime: req.StartTime,
			Status:        domain.StatusPending,
			Notes:         req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			// Уникальный индекс БД - последний рубеж против гонки
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot taken at insert for listing=%d", req.ListingID)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d (listing=%d, agent=%d)",
		result.ID, result.ListingID, result.AgentID)

	return fromDomain(result, now), nil
}
