package stylist_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkStylist "github.com/m04kA/SMC-SalonAvailability/internal/usecase/check_stylist"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp    *checkStylist.Response
	err     error
	lastReq *checkStylist.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkStylist.Request) (*checkStylist.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/stylists/{stylistId}/availability", NewHandler(uc, nopLogger{}).Handle)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_Busy(t *testing.T) {
	uc := &fakeUseCase{resp: &checkStylist.Response{Free: false, ConflictingAppointmentID: ptr.Ptr("a7")}}

	w := serve(uc, "/stylists/s1/availability?start=2025-03-10T10:00:00Z&duration=30&excludeAppointmentId=a1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ptr.Ptr("s1"), uc.lastReq.StylistID)
	assert.Equal(t, ptr.Ptr("a1"), uc.lastReq.ExcludeAppointmentID)
	assert.Equal(t, 30, uc.lastReq.DurationMinutes)

	var body StylistAvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Free)
	assert.Equal(t, ptr.Ptr("a7"), body.ConflictingAppointmentID)
}

func TestHandler_NoExclude(t *testing.T) {
	uc := &fakeUseCase{resp: &checkStylist.Response{Free: true}}

	w := serve(uc, "/stylists/s1/availability?start=2025-03-10T10:00:00Z")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, uc.lastReq.ExcludeAppointmentID)
	assert.Zero(t, uc.lastReq.DurationMinutes)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "missing start", target: "/stylists/s1/availability", want: http.StatusBadRequest},
		{name: "bad duration", target: "/stylists/s1/availability?start=2025-03-10T10:00:00Z&duration=x", want: http.StatusBadRequest},
		{name: "invalid input", target: "/stylists/s1/availability?start=2025-03-10T10:00:00Z", err: checkStylist.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", target: "/stylists/s1/availability?start=2025-03-10T10:00:00Z", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
