package admission

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/capacity"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/conflicts"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

const notePreferenceDropped = "preferred unit is busy in the requested window, assigned to the pool"

// Check решает, можно ли допустить запрос, по снимку существующих бронирований
// Функция чистая: результат зависит только от аргументов
//
// Порядок проверок:
//  1. форма запроса (ошибка ErrInvalidInput)
//  2. календарь: закрытая дата -> CLOSED
//  3. горизонт бронирования -> TOO_FAR
//  4. минимальное время до начала -> TOO_SOON
//  5. интервал: пересечения по ресурсу -> OVERLAP
//     слот: каталог, рабочие часы, вместимость -> SLOT_FULL
func Check(
	cfg *domain.SchedulingConfig,
	existing []*domain.Reservation,
	req *domain.AdmissionRequest,
	now time.Time,
) (*domain.AdmissionVerdict, error) {
	// 1. Валидация
	if cfg == nil {
		return nil, ErrMissingConfig
	}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	loc := cfg.Location()
	existing = dedupe(existing)

	start, date := candidateStart(req, loc)

	// 2. Календарь
	res, err := calendar.Resolve(cfg.Calendar, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !res.Open {
		v := reject(domain.ReasonClosed, now)
		v.Note = res.HolidayNote
		return v, nil
	}

	// 3. Горизонт бронирования
	if cfg.HasAdvanceBookingLimit() {
		lastDate := calendar.DateOf(now, loc).AddDate(0, 0, cfg.AdvanceBookingDays)
		if date.After(lastDate) {
			v := reject(domain.ReasonTooFar, now)
			v.Note = ptr.Ptr(fmt.Sprintf("reservations are accepted up to %d days ahead", cfg.AdvanceBookingDays))
			return v, nil
		}
	}

	// 4. Минимальное время до начала (включая прошедшие даты)
	earliest := now.Add(time.Duration(cfg.MinLeadTimeMinutes) * time.Minute)
	if start.Before(earliest) {
		v := reject(domain.ReasonTooSoon, now)
		v.Note = ptr.Ptr(fmt.Sprintf("start must be at least %d minutes from now", cfg.MinLeadTimeMinutes))
		return v, nil
	}

	// 5. Проверка по стилю
	switch req.Style {
	case domain.StyleInterval:
		return checkInterval(cfg, existing, req, loc, now)
	default:
		return checkSlot(cfg, existing, req, res, loc, now)
	}
}

func checkInterval(
	cfg *domain.SchedulingConfig,
	existing []*domain.Reservation,
	req *domain.AdmissionRequest,
	loc *time.Location,
	now time.Time,
) (*domain.AdmissionVerdict, error) {
	found, err := conflicts.FindOverlaps(*req.ResourceID, req.StartAt, req.EndAt, existing, conflicts.Params{
		Blocking:      cfg.Blocking(),
		BufferMinutes: cfg.BufferMinutes,
		Location:      loc,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(found) > 0 {
		v := reject(domain.ReasonOverlap, now)
		v.Conflicts = conflicts.IDs(found)
		return v, nil
	}

	v := admit(now)
	v.AssignedResourceID = ptr.Ptr(*req.ResourceID)
	return v, nil
}

func checkSlot(
	cfg *domain.SchedulingConfig,
	existing []*domain.Reservation,
	req *domain.AdmissionRequest,
	res calendar.Resolution,
	loc *time.Location,
	now time.Time,
) (*domain.AdmissionVerdict, error) {
	// Слот должен быть в каталоге
	if _, ok := cfg.Catalog.Find(req.SlotTime); !ok {
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidInput, ErrUnknownSlot, req.SlotTime)
	}

	// и в рабочих часах
	if !res.InBusinessHours(req.SlotTime) {
		v := reject(domain.ReasonClosed, now)
		v.Note = ptr.Ptr(fmt.Sprintf("slot %s is outside business hours %s-%s", req.SlotTime, res.OpenTime, res.CloseTime))
		return v, nil
	}

	// Существующие бронирования учитываются с буфером пула
	board, err := capacity.ComputeSlotState(cfg, req.Date, existing, cfg.BufferMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	target, _ := board.Slot(req.SlotTime)
	if target.IsFull {
		v := reject(domain.ReasonSlotFull, now)
		v.Note = ptr.Ptr(fmt.Sprintf("slot %s: %d of %d units taken", target.TimeOfDay, target.Occupied(), target.Capacity))
		return v, nil
	}

	// Занятость кандидата переходит в следующие слоты: они тоже должны иметь место
	buffer := req.CandidateBuffer(cfg.BufferMinutes)
	for _, spilled := range board.SpillTargets(req.SlotTime, req.DurationMinutes, buffer) {
		if spilled.IsFull {
			v := reject(domain.ReasonSlotFull, now)
			v.Note = ptr.Ptr(fmt.Sprintf("duration runs into full slot %s", spilled.TimeOfDay))
			return v, nil
		}
	}

	v := admit(now)
	v.AssignedSlot = ptr.Ptr(req.SlotTime)

	// Предпочтительная единица: если занята, назначаем на пул, а не отклоняем
	if req.ResourceID != nil {
		start := req.SlotTime.On(req.Date, loc)
		end := start.Add(time.Duration(req.DurationMinutes+buffer) * time.Minute)

		busy, err := conflicts.FindOverlaps(*req.ResourceID, start, end, existing, conflicts.Params{
			Blocking:      cfg.Blocking(),
			BufferMinutes: cfg.BufferMinutes,
			Location:      loc,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if len(busy) > 0 {
			v.PreferenceDropped = true
			v.Conflicts = conflicts.IDs(busy)
			v.Note = ptr.Ptr(notePreferenceDropped)
		} else {
			v.AssignedResourceID = ptr.Ptr(*req.ResourceID)
		}
	}

	return v, nil
}

// Reconcile сводит вердикт, показанный клиенту, и свежий вердикт перед записью
// Побеждает отклоняющий вердикт; при двух отказах - свежий
func Reconcile(advisory, fresh *domain.AdmissionVerdict) *domain.AdmissionVerdict {
	if fresh == nil {
		return advisory
	}
	if advisory == nil || fresh.IsRejection() || !advisory.IsRejection() {
		return fresh
	}
	return advisory
}

// candidateStart начало кандидата и календарная дата, по которой он проверяется
func candidateStart(req *domain.AdmissionRequest, loc *time.Location) (time.Time, time.Time) {
	if req.Style == domain.StyleInterval {
		return req.StartAt, calendar.DateOf(req.StartAt, loc)
	}
	return req.SlotTime.On(req.Date, loc), calendar.DateOf(req.Date, nil)
}

func dedupe(existing []*domain.Reservation) []*domain.Reservation {
	seen := make(map[int64]struct{}, len(existing))
	result := make([]*domain.Reservation, 0, len(existing))
	for _, r := range existing {
		if r == nil {
			continue
		}
		if r.ID != 0 {
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
		}
		result = append(result, r)
	}
	return result
}

func admit(now time.Time) *domain.AdmissionVerdict {
	return &domain.AdmissionVerdict{Admitted: true, Conflicts: []int64{}, CheckedAt: now}
}

func reject(reason domain.RejectionReason, now time.Time) *domain.AdmissionVerdict {
	return &domain.AdmissionVerdict{Admitted: false, Reason: reason, Conflicts: []int64{}, CheckedAt: now}
}
