package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pools/7/available-slots"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"poolId": "7"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Slots(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:      time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		PoolID:    7,
		Open:      true,
		OpenTime:  "09:00",
		CloseTime: "18:00",
		Slots: []getAvailableSlots.Slot{
			{StartTime: "09:00", Capacity: 2, BookedCount: 1, AvailableSpots: 1, OccupancyRate: 0.5, Offerable: true},
		},
	}}

	rec := serve(NewHandler(uc, nopLogger{}), "?date=2024-06-03&duration=50")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, uc.got.DurationMinutes)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-06-03", body.Date)
	assert.Equal(t, "09:00", *body.OpenTime)
	require.Len(t, body.Slots, 1)
	assert.True(t, body.Slots[0].Offerable)
}

func TestHandler_ClosedDay(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:         time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		PoolID:       7,
		ClosedReason: domain.ClosedWeekly,
		Slots:        []getAvailableSlots.Slot{},
	}}

	rec := serve(NewHandler(uc, nopLogger{}), "?date=2024-06-02")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Open)
	assert.Equal(t, "weekly-closed", body.ClosedReason)
	assert.Nil(t, body.OpenTime)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "missing date", query: "", wantStatus: http.StatusBadRequest},
		{name: "bad date", query: "?date=03.06.2024", wantStatus: http.StatusBadRequest},
		{name: "bad duration", query: "?date=2024-06-03&duration=long", wantStatus: http.StatusBadRequest},
		{name: "past date", query: "?date=2024-06-03", err: getAvailableSlots.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "too far", query: "?date=2024-06-03", err: getAvailableSlots.ErrDateTooFarInFuture, wantStatus: http.StatusBadRequest},
		{name: "internal", query: "?date=2024-06-03", err: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}), tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
