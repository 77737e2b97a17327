package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonAvailability/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp    *createAppointment.Response
	err     error
	lastReq *createAppointment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body)))
	return w
}

const validBody = `{
	"branchId": "b1",
	"clientName": "Ana",
	"date": "2025-03-10",
	"startTime": "10:30",
	"services": [
		{"serviceId": "cut", "stylistId": "s1", "duration": 30},
		{"serviceId": "color", "stylistId": "s2", "duration": 90}
	]
}`

func TestHandler_Created(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	start := time.Date(2025, 3, 10, 10, 30, 0, 0, loc)
	uc := &fakeUseCase{resp: &createAppointment.Response{
		Appointment: &domain.Appointment{
			ID:              "a1",
			BranchID:        "b1",
			ClientName:      "Ana",
			AppointmentDate: start,
			DurationMinutes: 120,
			Status:          domain.StatusPending,
			Assignment:      domain.SingleAssignment{StylistID: "s1"},
		},
		Warning: ptr.Ptr("Appointment ends after closing time (18:00)"),
	}}
	h := NewHandler(uc, loc, nopLogger{})

	w := post(h, validBody)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, uc.lastReq.Start.Equal(start))
	require.Len(t, uc.lastReq.Services, 2)
	assert.Equal(t, 90, uc.lastReq.Services[1].DurationMinutes)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a1", body["id"])
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "Appointment ends after closing time (18:00)", body["warning"])
}

func TestHandler_Errors(t *testing.T) {
	rejected := func(sentinel error, msg string) error {
		return fmt.Errorf("wrapped: %w", &createAppointment.RejectionError{Err: sentinel, Message: msg})
	}

	tests := []struct {
		name    string
		body    string
		err     error
		want    int
		wantMsg string
	}{
		{name: "malformed body", body: `{`, want: http.StatusBadRequest},
		{name: "bad time", body: `{"branchId":"b1","date":"2025-03-10","startTime":"25:00"}`, want: http.StatusBadRequest},
		{name: "bad date", body: `{"branchId":"b1","date":"03/10/2025","startTime":"10:00"}`, want: http.StatusBadRequest},
		{name: "invalid input", body: validBody, err: createAppointment.ErrInvalidInput, want: http.StatusBadRequest},
		{
			name:    "stylist busy",
			body:    validBody,
			err:     rejected(createAppointment.ErrStylistBusy, "Stylist s1 already has an appointment at this time"),
			want:    http.StatusConflict,
			wantMsg: "Stylist s1 already has an appointment at this time",
		},
		{
			name:    "too late",
			body:    validBody,
			err:     rejected(createAppointment.ErrTooLateToBook, "Appointments must be booked at least 2 hours in advance"),
			want:    http.StatusUnprocessableEntity,
			wantMsg: "Appointments must be booked at least 2 hours in advance",
		},
		{
			name:    "holiday",
			body:    validBody,
			err:     rejected(createAppointment.ErrBranchClosed, "Christmas - No appointments available on this date"),
			want:    http.StatusUnprocessableEntity,
			wantMsg: "Christmas - No appointments available on this date",
		},
		{
			name:    "branch not found",
			body:    validBody,
			err:     rejected(createAppointment.ErrBranchNotFound, "Branch not found"),
			want:    http.StatusNotFound,
			wantMsg: "Branch not found",
		},
		{name: "internal", body: validBody, err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, time.UTC, nopLogger{})

			w := post(h, tt.body)

			assert.Equal(t, tt.want, w.Code)
			if tt.wantMsg != "" {
				assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.wantMsg), w.Body.String())
			}
		})
	}
}
