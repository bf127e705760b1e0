package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatelink/viewing-service/internal/domain"
	apptRepo "github.com/estatelink/viewing-service/internal/infra/storage/appointment"
	"github.com/estatelink/viewing-service/internal/integrations/listingservice"
	"github.com/estatelink/viewing-service/internal/integrations/userservice"
	"github.com/estatelink/viewing-service/pkg/ptr"
	"github.com/estatelink/viewing-service/pkg/types"
)

// --- mocks ---

type mockAppointmentRepo struct {
	slotOccupied bool
	slotErr      error
	createErr    error
	created      *domain.Appointment

	lastExcludeID *int64
}

func (m *mockAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	appt.ID = 101
	appt.CreatedAt = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	appt.UpdatedAt = appt.CreatedAt
	m.created = appt
	return appt, nil
}

func (m *mockAppointmentRepo) HasActiveSlot(_ context.Context, _ int64, _ time.Time, _ types.TimeString, excludeID *int64) (bool, error) {
	m.lastExcludeID = excludeID
	return m.slotOccupied, m.slotErr
}

type mockListingClient struct {
	listing *listingservice.Listing
	err     error
}

func (m *mockListingClient) GetListing(_ context.Context, _ int64) (*listingservice.Listing, error) {
	return m.listing, m.err
}

type mockUserClient struct {
	user *userservice.User
	err  error
}

func (m *mockUserClient) GetUser(_ context.Context, _ int64) (*userservice.User, error) {
	return m.user, m.err
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

func newTestUseCase(repo *mockAppointmentRepo, listing *mockListingClient, user *mockUserClient) *UseCase {
	uc := NewUseCase(repo, listing, user, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func activeListing() *mockListingClient {
	return &mockListingClient{listing: &listingservice.Listing{
		ID:      7,
		AgentID: 42,
		Status:  "active",
	}}
}

func knownUser() *mockUserClient {
	return &mockUserClient{user: &userservice.User{ID: 3, Role: "client"}}
}

func validRequest() *Request {
	return &Request{
		ListingID: 7,
		ClientID:  3,
		Date:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:00"),
		Notes:     ptr.Ptr("first viewing"),
	}
}

// --- tests ---

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	repo := &mockAppointmentRepo{}
	uc := newTestUseCase(repo, activeListing(), knownUser())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(42), resp.AgentID, "agent must be copied from the listing")
	assert.Equal(t, int64(3), resp.ClientID)
	assert.True(t, resp.IsUpcoming)
	assert.Nil(t, repo.lastExcludeID, "create must not exclude any appointment from the conflict check")

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
}

func TestExecute_ListingUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		listing listingservice.Listing
	}{
		{"sold", listingservice.Listing{ID: 7, AgentID: 42, Status: "sold"}},
		{"pending", listingservice.Listing{ID: 7, AgentID: 42, Status: "pending"}},
		{"inactive", listingservice.Listing{ID: 7, AgentID: 42, Status: "inactive"}},
		{"soft-deleted", listingservice.Listing{ID: 7, AgentID: 42, Status: "active", IsDeleted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := tt.listing
			uc := newTestUseCase(&mockAppointmentRepo{}, &mockListingClient{listing: &listing}, knownUser())

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrListingUnavailable)
		})
	}
}

func TestExecute_ListingNotFound(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockListingClient{err: listingservice.ErrListingNotFound}, knownUser())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestExecute_UserNotFound(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, activeListing(), &mockUserClient{err: userservice.ErrUserNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, activeListing(), knownUser())

	req := validRequest()
	req.Date = time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC) // yesterday relative to testNow

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestExecute_SlotEqualToNowIsPast(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, activeListing(), knownUser())

	req := validRequest()
	req.Date = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	req.StartTime = types.TimeString("12:00") // exactly testNow

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestExecute_SlotLaterSameDayIsAccepted(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, activeListing(), knownUser())

	req := validRequest()
	req.Date = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	req.StartTime = types.TimeString("12:01")

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_SlotConflict(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{slotOccupied: true}, activeListing(), knownUser())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_SlotTakenAtInsertMapsToConflict(t *testing.T) {
	// прикладная проверка прошла, но конкурирующая вставка успела раньше
	repo := &mockAppointmentRepo{createErr: apptRepo.ErrSlotTaken}
	uc := newTestUseCase(repo, activeListing(), knownUser())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, activeListing(), knownUser())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero listing id", func(r *Request) { r.ListingID = 0 }},
		{"zero client id", func(r *Request) { r.ClientID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty time", func(r *Request) { r.StartTime = "" }},
		{"malformed time", func(r *Request) { r.StartTime = "25:99" }},
		{"notes too long", func(r *Request) {
			long := make([]byte, domain.MaxNotesLength+1)
			for i := range long {
				long[i] = 'a'
			}
			s := string(long)
			r.Notes = &s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
