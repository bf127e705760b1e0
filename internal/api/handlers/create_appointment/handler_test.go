package create_appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatelink/viewing-service/internal/api/middleware"
	createAppointment "github.com/estatelink/viewing-service/internal/usecase/create_appointment"
	"github.com/estatelink/viewing-service/pkg/types"
)

type mockUseCase struct {
	response *createAppointment.Response
	err      error

	lastRequest *createAppointment.Request
}

func (m *mockUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestServer(uc *mockUseCase) http.Handler {
	handler := NewHandler(uc, nopLogger{})
	return middleware.Auth(http.HandlerFunc(handler.Handle))
}

func doRequest(t *testing.T, srv http.Handler, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(payload))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"listingId":     int64(10),
		"scheduledDate": "2026-06-01",
		"scheduledTime": "14:00",
	}
}

func TestHandle_CreatedSuccessfully(t *testing.T) {
	slot, err := types.NewTimeStringFromString("14:00")
	require.NoError(t, err)

	uc := &mockUseCase{
		response: &createAppointment.Response{
			ID:            1,
			ListingID:     10,
			ClientID:      100,
			AgentID:       200,
			ScheduledDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			ScheduledTime: slot,
			Status:        "pending",
			IsUpcoming:    true,
			CreatedAt:     time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	srv := newTestServer(uc)

	rec := doRequest(t, srv, "100", validBody())

	assert.Equal(t, http.StatusCreated, rec.Code)

	// ID клиента берётся из заголовка, а не из тела
	require.NotNil(t, uc.lastRequest)
	assert.Equal(t, int64(100), uc.lastRequest.ClientID)
	assert.Equal(t, int64(10), uc.lastRequest.ListingID)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2026-06-01", resp.ScheduledDate)
	assert.Equal(t, "14:00", resp.ScheduledTime)
	assert.True(t, resp.IsUpcoming)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		useCaseErr error
		wantStatus int
	}{
		{"slot conflict -> 409", createAppointment.ErrSlotConflict, http.StatusConflict},
		{"listing not found -> 404", createAppointment.ErrListingNotFound, http.StatusNotFound},
		{"user not found -> 404", createAppointment.ErrUserNotFound, http.StatusNotFound},
		{"listing unavailable -> 400", createAppointment.ErrListingUnavailable, http.StatusBadRequest},
		{"past date -> 400", createAppointment.ErrPastDate, http.StatusBadRequest},
		{"invalid input -> 400", createAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"internal -> 500", createAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockUseCase{err: tt.useCaseErr})

			rec := doRequest(t, srv, "100", validBody())

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MissingUserIDHeader(t *testing.T) {
	srv := newTestServer(&mockUseCase{})

	rec := doRequest(t, srv, "", validBody())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidDateFormat(t *testing.T) {
	uc := &mockUseCase{}
	srv := newTestServer(uc)

	body := validBody()
	body["scheduledDate"] = "01.06.2026"

	rec := doRequest(t, srv, "100", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastRequest)
}

func TestHandle_UnknownFieldRejected(t *testing.T) {
	uc := &mockUseCase{}
	srv := newTestServer(uc)

	body := validBody()
	body["clientId"] = int64(999)

	rec := doRequest(t, srv, "100", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastRequest)
}
