package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estatelink/viewing-service/internal/domain"
	apptRepo "github.com/estatelink/viewing-service/internal/infra/storage/appointment"
	"github.com/estatelink/viewing-service/pkg/types"
)

// UseCase use case для переноса бронирования просмотра на другой слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет перенос бронирования.
// Само бронирование исключается из проверки конфликта, поэтому перенос
// "на тот же слот" не конфликтует сам с собой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, requester=%d, date=%s, time=%s",
		req.AppointmentID, req.RequesterID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация нового слота: строго в будущем
	if err := validateSlotInFuture(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("RescheduleAppointment: slot time validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 4. Проверки и обновление в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем бронирование
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 4.2. Переносить может только участник (клиент или агент)
		if !appt.IsParticipant(req.RequesterID) {
			uc.logger.Warn("RescheduleAppointment: user=%d is not a participant of appointment id=%d",
				req.RequesterID, req.AppointmentID)
			return ErrAccessDenied
		}

		// 4.3. Терминальные бронирования не переносятся
		if appt.IsTerminal() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d is terminal (status=%s)",
				req.AppointmentID, appt.Status)
			return ErrInvalidTransition
		}

		// 4.4. Проверяем конфликт, исключая само бронирование
		occupied, err := uc.appointmentRepo.HasActiveSlot(txCtx, appt.ListingID, req.Date, req.StartTime, &appt.ID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if occupied {
			uc.logger.Warn("RescheduleAppointment: slot conflict for listing=%d, date=%s, time=%s",
				appt.ListingID, req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotConflict
		}

		// 4.5. Переносим бронирование
		if err := uc.appointmentRepo.Reschedule(txCtx, appt.ID, req.Date, req.StartTime); err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleAppointment: slot taken at update for listing=%d", appt.ListingID)
				return ErrSlotConflict
			}
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to reschedule appointment: %v", ErrInternal, err)
		}

		appt.ScheduledDate = req.Date
		appt.ScheduledTime = req.StartTime
		appt.UpdatedAt = now

		result = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d to %s %s",
		result.ID, result.ScheduledDate.Format(domain.DateFormat), result.ScheduledTime)

	return fromDomain(result, now), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateSlotInFuture проверяет, что новый слот строго в будущем
func validateSlotInFuture(date time.Time, slot types.TimeString, now time.Time) error {
	scheduledAt, err := slot.OnDate(date)
	if err != nil {
		return fmt.Errorf("%w: invalid slot time: %v", ErrInvalidInput, err)
	}

	if !scheduledAt.After(now) {
		return ErrPastDate
	}

	return nil
}
