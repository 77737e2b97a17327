package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonAvailability/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp    *getAvailableSlots.Response
	err     error
	lastReq *getAvailableSlots.TeamRequest
}

func (f *fakeUseCase) ExecuteTeam(_ context.Context, req *getAvailableSlots.TeamRequest) (*getAvailableSlots.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/branches/{branchId}/available-slots", h.Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_Slots(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		BranchID: "b1",
		Date:     day,
		Slots: []domain.TimeSlot{
			{Time: day.Add(9 * time.Hour), Available: true},
			{Time: day.Add(9*time.Hour + 30*time.Minute), Available: false, Reason: domain.SlotReasonStylistBusy},
		},
	}}
	h := NewHandler(uc, nopLogger{})

	w := serve(h, "/branches/b1/available-slots?date=2025-03-10&duration=90&stylistId=s1&stylistId=s2")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b1", uc.lastReq.BranchID)
	assert.Equal(t, 90, uc.lastReq.ServiceDurationMinutes)
	assert.Equal(t, []string{"s1", "s2"}, uc.lastReq.StylistIDs)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-10", body.Date)
	assert.Equal(t, 1, body.AvailableCount)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "09:00", body.Slots[0].Time)
	assert.Equal(t, domain.SlotReasonStylistBusy, body.Slots[1].Reason)
	assert.Nil(t, body.Message)
}

func TestHandler_MessageIsOK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		BranchID: "b1",
		Date:     time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		Slots:    []domain.TimeSlot{},
		Message:  ptr.Ptr("Branch is closed on Sundays"),
	}}
	h := NewHandler(uc, nopLogger{})

	w := serve(h, "/branches/b1/available-slots?date=2025-03-09")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, uc.lastReq.ServiceDurationMinutes)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Message)
	assert.Equal(t, "Branch is closed on Sundays", *body.Message)
	assert.Empty(t, body.Slots)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "missing date", target: "/branches/b1/available-slots", want: http.StatusBadRequest},
		{name: "bad date", target: "/branches/b1/available-slots?date=10.03.2025", want: http.StatusBadRequest},
		{name: "bad duration", target: "/branches/b1/available-slots?date=2025-03-10&duration=long", want: http.StatusBadRequest},
		{name: "invalid input", target: "/branches/b1/available-slots?date=2025-03-10", err: getAvailableSlots.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "unexpected", target: "/branches/b1/available-slots?date=2025-03-10", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			w := serve(h, tt.target)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
