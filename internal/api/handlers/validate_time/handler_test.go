package validate_time

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

	validateTime "github.com/m04kA/SMC-SalonAvailability/internal/usecase/validate_time"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp    *validateTime.Response
	err     error
	lastReq *validateTime.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *validateTime.Request) (*validateTime.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/branches/{branchId}/validate-time", NewHandler(uc, nopLogger{}).Handle)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_Result(t *testing.T) {
	uc := &fakeUseCase{resp: &validateTime.Response{
		IsValid: false,
		Code:    validateTime.CodeBeforeOpening,
		Message: "Branch opens at 09:00",
	}}

	w := serve(uc, "/branches/b1/validate-time?start=2025-03-10T08:30:00%2B08:00&duration=45")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b1", uc.lastReq.BranchID)
	assert.Equal(t, 45, uc.lastReq.DurationMinutes)
	assert.Nil(t, uc.lastReq.StylistID)
	assert.True(t, uc.lastReq.Start.Equal(time.Date(2025, 3, 10, 0, 30, 0, 0, time.UTC)))

	var body ValidateTimeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.IsValid)
	assert.Equal(t, "starts_before_opening", body.Code)
	assert.Equal(t, "Branch opens at 09:00", body.Message)
}

func TestHandler_StylistID(t *testing.T) {
	uc := &fakeUseCase{resp: &validateTime.Response{IsValid: true, Code: validateTime.CodeValid}}

	w := serve(uc, "/branches/b1/validate-time?start=2025-03-12T07:00:00Z&stylistId=S1")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.lastReq.StylistID)
	assert.Equal(t, "S1", *uc.lastReq.StylistID)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "missing start", target: "/branches/b1/validate-time", want: http.StatusBadRequest},
		{name: "bad start", target: "/branches/b1/validate-time?start=10:00", want: http.StatusBadRequest},
		{name: "invalid input", target: "/branches/b1/validate-time?start=2025-03-10T10:00:00Z", err: validateTime.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", target: "/branches/b1/validate-time?start=2025-03-10T10:00:00Z", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
