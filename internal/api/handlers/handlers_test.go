package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"van"}`))
	require.NoError(t, DecodeJSON(req, &body))
	assert.Equal(t, "van", body.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(req, &body), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"unknown":1}`))
	assert.Error(t, DecodeJSON(req, &body))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "не найдено")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":404,"message":"не найдено"}`, rec.Body.String())
}

func TestAdmissionBody_Parse(t *testing.T) {
	start := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	unit := int64(3)

	interval, err := (&AdmissionBody{Style: "interval", ResourceID: &unit, StartAt: &start, EndAt: &end}).Parse()
	require.NoError(t, err)
	assert.Equal(t, domain.StyleInterval, interval.Style)
	assert.Equal(t, end, interval.EndAt)

	slot, err := (&AdmissionBody{Style: "slot", Date: "2024-06-03", SlotTime: "09:00", DurationMinutes: 50}).Parse()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), slot.SlotTime)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), slot.Date)

	tests := []struct {
		name string
		body AdmissionBody
	}{
		{name: "unknown style", body: AdmissionBody{Style: "daily"}},
		{name: "interval without end", body: AdmissionBody{Style: "interval", StartAt: &start}},
		{name: "slot without time", body: AdmissionBody{Style: "slot", Date: "2024-06-03"}},
		{name: "slot bad date", body: AdmissionBody{Style: "slot", Date: "03.06.2024", SlotTime: "09:00"}},
		{name: "slot bad time", body: AdmissionBody{Style: "slot", Date: "2024-06-03", SlotTime: "9am"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.body.Parse()
			assert.Error(t, err)
		})
	}
}

func TestVerdictDTO_RoundTrip(t *testing.T) {
	slot := types.TimeString("10:00")
	verdict := &domain.AdmissionVerdict{
		Admitted:     true,
		AssignedSlot: &slot,
		CheckedAt:    time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC),
	}

	dto := FromDomainVerdict(verdict)
	require.NotNil(t, dto.AssignedSlot)
	assert.Equal(t, "10:00", *dto.AssignedSlot)

	back, err := dto.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, verdict, back)

	var nilDTO *VerdictDTO
	back, err = nilDTO.ToDomain()
	assert.NoError(t, err)
	assert.Nil(t, back)
}
