package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatelink/viewing-service/internal/domain"
	apptRepo "github.com/estatelink/viewing-service/internal/infra/storage/appointment"
	"github.com/estatelink/viewing-service/pkg/types"
)

// --- mocks ---

type mockAppointmentRepo struct {
	appt         *domain.Appointment
	getErr       error
	slotOccupied bool
	rescheduled  bool
	rescheduleErr error

	lastExcludeID *int64
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	cp := *m.appt
	return &cp, nil
}

func (m *mockAppointmentRepo) HasActiveSlot(_ context.Context, _ int64, _ time.Time, _ types.TimeString, excludeID *int64) (bool, error) {
	m.lastExcludeID = excludeID
	return m.slotOccupied, nil
}

func (m *mockAppointmentRepo) Reschedule(_ context.Context, _ int64, _ time.Time, _ types.TimeString) error {
	if m.rescheduleErr != nil {
		return m.rescheduleErr
	}
	m.rescheduled = true
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:            55,
		ListingID:     7,
		ClientID:      3,
		AgentID:       42,
		ScheduledDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ScheduledTime: types.TimeString("14:00"),
		Status:        domain.StatusPending,
	}
}

func newTestUseCase(repo *mockAppointmentRepo) *UseCase {
	uc := NewUseCase(repo, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		AppointmentID: 55,
		RequesterID:   3,
		Date:          time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("16:00"),
	}
}

// --- tests ---

func TestExecute_ReschedulesAppointment(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, repo.rescheduled)
	assert.Equal(t, types.TimeString("16:00"), resp.ScheduledTime)
	assert.Equal(t, time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), resp.ScheduledDate)
	assert.True(t, resp.IsUpcoming)

	// the appointment itself must be excluded from the conflict scan
	require.NotNil(t, repo.lastExcludeID)
	assert.Equal(t, int64(55), *repo.lastExcludeID)
}

func TestExecute_AgentCanReschedule(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.RequesterID = 42 // agent of the appointment

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_StrangerIsForbidden(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.RequesterID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.rescheduled)
}

func TestExecute_TerminalAppointmentRejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			appt := pendingAppointment()
			appt.Status = status
			repo := &mockAppointmentRepo{appt: appt}
			uc := newTestUseCase(repo)

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	repo := &mockAppointmentRepo{getErr: apptRepo.ErrAppointmentNotFound}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_PastSlotRejected(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.Date = time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment(), slotOccupied: true}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.False(t, repo.rescheduled)
}

func TestExecute_SlotTakenAtUpdateMapsToConflict(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment(), rescheduleErr: apptRepo.ErrSlotTaken}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}
