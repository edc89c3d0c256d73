package conflicts

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ErrInvalidRange возвращается, когда конец кандидата раньше начала
var ErrInvalidRange = errors.New("conflicts: candidate end is before start")

// Params параметры поиска пересечений
type Params struct {
	// Blocking статусы, которые занимают ресурс
	Blocking []domain.ReservationStatus
	// BufferMinutes буфер после слотовых бронирований
	BufferMinutes int
	// Location зона, в которой интерпретируется время слотов
	Location *time.Location
}

// Overlaps проверяет пересечение закрытых интервалов [s1,e1] и [s2,e2]
// Касание концами считается пересечением
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !(e1.Before(s2) || s1.After(e2))
}

// FindOverlaps возвращает все блокирующие бронирования ресурса, пересекающиеся с [start, end]
// Бронирования без ResourceID (назначенные на пул) не учитываются
func FindOverlaps(
	resourceID int64,
	start, end time.Time,
	existing []*domain.Reservation,
	params Params,
) ([]*domain.Reservation, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	blocking := params.Blocking
	if len(blocking) == 0 {
		blocking = domain.DefaultBlockingStatuses
	}

	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}

	result := make([]*domain.Reservation, 0)
	for _, r := range existing {
		if r == nil || r.ResourceID == nil || *r.ResourceID != resourceID {
			continue
		}
		if !r.IsBlocking(blocking) {
			continue
		}

		rStart, rEnd := r.OccupiedWindow(params.BufferMinutes, loc)
		if Overlaps(start, end, rStart, rEnd) {
			result = append(result, r)
		}
	}

	return result, nil
}

// IDs идентификаторы бронирований в исходном порядке
func IDs(reservations []*domain.Reservation) []int64 {
	ids := make([]int64, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}
	return ids
}
