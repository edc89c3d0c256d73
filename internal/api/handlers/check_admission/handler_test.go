package check_admission

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	checkAdmission "github.com/m04kA/SMC-ReservationService/internal/usecase/check_admission"
)

type fakeUseCase struct {
	got     *checkAdmission.Request
	verdict *domain.AdmissionVerdict
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkAdmission.Request) (*checkAdmission.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &checkAdmission.Response{Verdict: f.verdict}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, poolID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pools/"+poolID+"/admission-checks", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"poolId": poolID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const slotBody = `{"style":"slot","date":"2024-06-03","slotTime":"09:00","durationMinutes":50}`

func TestHandler_RejectionIsOK(t *testing.T) {
	uc := &fakeUseCase{verdict: &domain.AdmissionVerdict{
		Reason:    domain.ReasonSlotFull,
		CheckedAt: time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC),
	}}
	rec := serve(NewHandler(uc, nopLogger{}), "7", slotBody)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["admitted"])
	assert.Equal(t, "SLOT_FULL", body["reason"])

	assert.Equal(t, int64(7), uc.got.PoolID)
	assert.Equal(t, domain.StyleSlot, uc.got.Style)
	assert.Equal(t, 50, uc.got.DurationMinutes)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		poolID     string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad pool id", poolID: "x", body: slotBody, wantStatus: http.StatusBadRequest},
		{name: "bad json", poolID: "7", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "unknown style", poolID: "7", body: `{"style":"daily"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid input", poolID: "7", body: slotBody, err: fmt.Errorf("%w: unknown slot", checkAdmission.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "store unavailable", poolID: "7", body: slotBody, err: checkAdmission.ErrStoreUnavailable, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err, verdict: &domain.AdmissionVerdict{Admitted: true}}
			rec := serve(NewHandler(uc, nopLogger{}), tt.poolID, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
