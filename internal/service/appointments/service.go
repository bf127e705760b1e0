package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/estatelink/viewing-service/internal/domain"
	apptRepo "github.com/estatelink/viewing-service/internal/infra/storage/appointment"
	userClient "github.com/estatelink/viewing-service/internal/integrations/userservice"
	"github.com/estatelink/viewing-service/internal/service/appointments/models"
)

// Service сервис для работы с бронированиями просмотров:
// чтение, смена статуса агентом, отмена участником
type Service struct {
	appointmentRepo AppointmentRepository
	userClient      UserServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований просмотров
func NewService(
	appointmentRepo AppointmentRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		userClient:      userClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно только участникам бронирования (клиенту или агенту).
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, requesterID)

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !appt.IsParticipant(requesterID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt, s.timeProvider.Now()), nil
}

// GetUserAppointments получает бронирования пользователя в зависимости от роли:
// клиент видит собственные бронирования, агент - бронирования по объектам,
// которыми он управляет. Кросс-ролевой видимости нет.
// Сортировка - ближайшие слоты первыми.
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	// Определяем роль пользователя через UserService
	user, err := s.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("GetUserAppointments: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetUserAppointments: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - failed to get user: %v", ErrInternal, err)
	}
	identity := user.ToDomain()

	filter := domain.AppointmentsFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if identity.IsAgent() {
		filter.AgentID = &req.UserID
	} else {
		filter.ClientID = &req.UserID
	}

	// Конвертируем статус из строки, если указан
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d (role=%s)",
		len(appointments), req.UserID, identity.Role)
	return models.FromDomainAppointmentList(appointments, s.timeProvider.Now()), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Менять статус может только агент бронирования. Терминальные бронирования
// (cancelled/completed) и неизвестные целевые статусы отклоняются.
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.RequesterID)

	appt, err := s.getAppointment(ctx, "UpdateStatus", appointmentID)
	if err != nil {
		return nil, err
	}

	// Только агент бронирования управляет его статусом
	if appt.AgentID != req.RequesterID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to appointment id=%d", req.RequesterID, appointmentID)
		return nil, ErrAccessDenied
	}

	// Из терминального статуса переходов нет
	if appt.IsTerminal() {
		s.logger.Warn("UpdateStatus: appointment id=%d is terminal (status=%s)", appointmentID, appt.Status)
		return nil, ErrInvalidTransition
	}

	// Валидируем целевой статус; возврат в pending не допускается
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil || newStatus == domain.StatusPending {
		s.logger.Warn("UpdateStatus: invalid target status=%s for appointment id=%d", req.Status, appointmentID)
		return nil, ErrInvalidTransition
	}

	if err := s.updateStatus(ctx, "UpdateStatus", appt, newStatus); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return models.FromDomainAppointment(appt, s.timeProvider.Now()), nil
}

// Cancel отменяет бронирование.
// Отменить может любой участник (клиент или агент). Отмена терминального
// бронирования отклоняется - в том числе повторная отмена уже отменённого.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.RequesterID)

	appt, err := s.getAppointment(ctx, "Cancel", appointmentID)
	if err != nil {
		return nil, err
	}

	if !appt.IsParticipant(req.RequesterID) {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.RequesterID, appointmentID)
		return nil, ErrAccessDenied
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled (status=%s)", appointmentID, appt.Status)
		return nil, ErrInvalidTransition
	}

	if err := s.updateStatus(ctx, "Cancel", appt, domain.StatusCancelled); err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return models.FromDomainAppointment(appt, s.timeProvider.Now()), nil
}

// Вспомогательные методы

// getAppointment получает бронирование, конвертируя ошибку репозитория
func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// updateStatus применяет новый статус в репозитории и в локальной модели
func (s *Service) updateStatus(ctx context.Context, op string, appt *domain.Appointment, status domain.AppointmentStatus) error {
	if err := s.appointmentRepo.UpdateStatus(ctx, appt.ID, status); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found during update", op, appt.ID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, appt.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	appt.Status = status
	appt.UpdatedAt = s.timeProvider.Now()
	return nil
}
