package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string          `json:"date"`
	PoolID       int64           `json:"poolId"`
	Open         bool            `json:"open"`
	ClosedReason string          `json:"closedReason,omitempty"` // weekly-closed | holiday
	HolidayNote  *string         `json:"holidayNote,omitempty"`
	OpenTime     *string         `json:"openTime,omitempty"`
	CloseTime    *string         `json:"closeTime,omitempty"`
	Slots        []AvailableSlot `json:"slots"`
}

// AvailableSlot модель слота каталога
type AvailableSlot struct {
	StartTime      string  `json:"startTime"`
	Capacity       int     `json:"capacity"`
	BookedCount    int     `json:"bookedCount"`
	SpillCount     int     `json:"spillCount"`
	AvailableSpots int     `json:"availableSpots"`
	OccupancyRate  float64 `json:"occupancyRate"`
	Offerable      bool    `json:"offerable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:      slot.StartTime.String(),
			Capacity:       slot.Capacity,
			BookedCount:    slot.BookedCount,
			SpillCount:     slot.SpillCount,
			AvailableSpots: slot.AvailableSpots,
			OccupancyRate:  slot.OccupancyRate,
			Offerable:      slot.Offerable,
		}
	}

	result := &AvailableSlotsResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		PoolID:       resp.PoolID,
		Open:         resp.Open,
		ClosedReason: string(resp.ClosedReason),
		HolidayNote:  resp.HolidayNote,
		Slots:        slots,
	}

	if resp.Open {
		openTime, closeTime := resp.OpenTime.String(), resp.CloseTime.String()
		result.OpenTime = &openTime
		result.CloseTime = &closeTime
	}

	return result
}

// ToUseCaseRequest создает запрос use case из query параметров
// durationStr опционален
func ToUseCaseRequest(poolID int64, dateStr, durationStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		PoolID: poolID,
		Date:   date,
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = duration
	}

	return req, nil
}
