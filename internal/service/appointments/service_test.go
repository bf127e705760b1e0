package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatelink/viewing-service/internal/domain"
	apptRepo "github.com/estatelink/viewing-service/internal/infra/storage/appointment"
	"github.com/estatelink/viewing-service/internal/integrations/userservice"
	"github.com/estatelink/viewing-service/internal/service/appointments/models"
	"github.com/estatelink/viewing-service/pkg/ptr"
	"github.com/estatelink/viewing-service/pkg/types"
)

// --- mocks ---

type mockAppointmentRepo struct {
	appt      *domain.Appointment
	getErr    error
	list      []*domain.Appointment
	updateErr error

	updatedID     int64
	updatedStatus domain.AppointmentStatus
	lastFilter    domain.AppointmentsFilter
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	cp := *m.appt
	return &cp, nil
}

func (m *mockAppointmentRepo) GetWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	m.lastFilter = filter
	return m.list, nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedID = id
	m.updatedStatus = status
	return nil
}

type mockUserClient struct {
	user *userservice.User
	err  error
}

func (m *mockUserClient) GetUser(_ context.Context, _ int64) (*userservice.User, error) {
	return m.user, m.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixtures ---

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

const (
	clientID   = int64(3)
	agentID    = int64(42)
	strangerID = int64(999)
)

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:            55,
		ListingID:     7,
		ClientID:      clientID,
		AgentID:       agentID,
		ScheduledDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ScheduledTime: types.TimeString("14:00"),
		Status:        domain.StatusPending,
	}
}

func newTestService(repo *mockAppointmentRepo, user *mockUserClient) *Service {
	if user == nil {
		user = &mockUserClient{user: &userservice.User{ID: clientID, Role: "client"}}
	}
	svc := NewService(repo, user, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: testNow}
	return svc
}

// --- GetByID ---

func TestGetByID_ParticipantsOnly(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	svc := newTestService(repo, nil)

	for _, userID := range []int64{clientID, agentID} {
		resp, err := svc.GetByID(context.Background(), 55, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(55), resp.ID)
		assert.True(t, resp.IsUpcoming)
	}

	_, err := svc.GetByID(context.Background(), 55, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockAppointmentRepo{getErr: apptRepo.ErrAppointmentNotFound}
	svc := newTestService(repo, nil)

	_, err := svc.GetByID(context.Background(), 55, clientID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

// --- GetUserAppointments ---

func TestGetUserAppointments_ClientSeesOwnAppointments(t *testing.T) {
	repo := &mockAppointmentRepo{list: []*domain.Appointment{pendingAppointment()}}
	user := &mockUserClient{user: &userservice.User{ID: clientID, Role: "client"}}
	svc := newTestService(repo, user)

	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{UserID: clientID})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)

	require.NotNil(t, repo.lastFilter.ClientID)
	assert.Equal(t, clientID, *repo.lastFilter.ClientID)
	assert.Nil(t, repo.lastFilter.AgentID)
}

func TestGetUserAppointments_AgentSeesManagedAppointments(t *testing.T) {
	repo := &mockAppointmentRepo{list: []*domain.Appointment{pendingAppointment()}}
	user := &mockUserClient{user: &userservice.User{ID: agentID, Role: "agent"}}
	svc := newTestService(repo, user)

	_, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{UserID: agentID})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.AgentID)
	assert.Equal(t, agentID, *repo.lastFilter.AgentID)
	assert.Nil(t, repo.lastFilter.ClientID)
}

func TestGetUserAppointments_InvalidStatusFilter(t *testing.T) {
	repo := &mockAppointmentRepo{}
	svc := newTestService(repo, nil)

	_, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: clientID,
		Status: ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserAppointments_UnknownUser(t *testing.T) {
	repo := &mockAppointmentRepo{}
	user := &mockUserClient{err: userservice.ErrUserNotFound}
	svc := newTestService(repo, user)

	_, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{UserID: strangerID})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// --- UpdateStatus ---

func TestUpdateStatus_AgentConfirms(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	svc := newTestService(repo, nil)

	resp, err := svc.UpdateStatus(context.Background(), 55, &models.UpdateStatusRequest{
		RequesterID: agentID,
		Status:      "confirmed",
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
	assert.Equal(t, int64(55), repo.updatedID)
}

func TestUpdateStatus_AgentCompletesConfirmed(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed
	repo := &mockAppointmentRepo{appt: appt}
	svc := newTestService(repo, nil)

	resp, err := svc.UpdateStatus(context.Background(), 55, &models.UpdateStatusRequest{
		RequesterID: agentID,
		Status:      "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
}

func TestUpdateStatus_OnlyAgentAllowed(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	svc := newTestService(repo, nil)

	for _, userID := range []int64{clientID, strangerID} {
		_, err := svc.UpdateStatus(context.Background(), 55, &models.UpdateStatusRequest{
			RequesterID: userID,
			Status:      "confirmed",
		})
		assert.ErrorIs(t, err, ErrAccessDenied, "user=%d", userID)
	}
}

func TestUpdateStatus_TerminalRejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			appt := pendingAppointment()
			appt.Status = status
			repo := &mockAppointmentRepo{appt: appt}
			svc := newTestService(repo, nil)

			_, err := svc.UpdateStatus(context.Background(), 55, &models.UpdateStatusRequest{
				RequesterID: agentID,
				Status:      "confirmed",
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestUpdateStatus_InvalidTargetRejected(t *testing.T) {
	// неизвестный статус и возврат в pending отклоняются без коэрции
	for _, target := range []string{"archived", "", "pending"} {
		repo := &mockAppointmentRepo{appt: pendingAppointment()}
		svc := newTestService(repo, nil)

		_, err := svc.UpdateStatus(context.Background(), 55, &models.UpdateStatusRequest{
			RequesterID: agentID,
			Status:      target,
		})
		assert.ErrorIs(t, err, ErrInvalidTransition, "target=%q", target)
		assert.Zero(t, repo.updatedID, "no partial application on failure")
	}
}

// --- Cancel ---

func TestCancel_ByClientAndAgent(t *testing.T) {
	for _, userID := range []int64{clientID, agentID} {
		repo := &mockAppointmentRepo{appt: pendingAppointment()}
		svc := newTestService(repo, nil)

		resp, err := svc.Cancel(context.Background(), 55, &models.CancelAppointmentRequest{RequesterID: userID})
		require.NoError(t, err)

		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, domain.StatusCancelled, repo.updatedStatus)
	}
}

func TestCancel_ConfirmedAppointmentSucceeds(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed
	repo := &mockAppointmentRepo{appt: appt}
	svc := newTestService(repo, nil)

	resp, err := svc.Cancel(context.Background(), 55, &models.CancelAppointmentRequest{RequesterID: clientID})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestCancel_StrangerForbidden(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	svc := newTestService(repo, nil)

	_, err := svc.Cancel(context.Background(), 55, &models.CancelAppointmentRequest{RequesterID: strangerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_TerminalNotIdempotent(t *testing.T) {
	// повторная отмена уже отменённого бронирования - тоже ошибка
	for _, status := range []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			appt := pendingAppointment()
			appt.Status = status
			repo := &mockAppointmentRepo{appt: appt}
			svc := newTestService(repo, nil)

			_, err := svc.Cancel(context.Background(), 55, &models.CancelAppointmentRequest{RequesterID: clientID})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Zero(t, repo.updatedID)
		})
	}
}
