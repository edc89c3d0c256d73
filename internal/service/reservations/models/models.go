package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidStyle возвращается при некорректном стиле бронирования
	ErrInvalidStyle = errors.New("invalid reservation style")
)

// Request модели

// CancelReservationRequest запрос на отмену или отклонение бронирования
type CancelReservationRequest struct {
	UserID             int64  `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// ListReservationsRequest запрос на получение бронирований пула
type ListReservationsRequest struct {
	PoolID     int64      `json:"poolId"`
	ResourceID *int64     `json:"resourceId,omitempty"`
	Style      *string    `json:"style,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Status     *string    `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		PoolID:     ptr.Ptr(r.PoolID),
		ResourceID: r.ResourceID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}

	if r.Style != nil {
		style := domain.ReservationStyle(*r.Style)
		if !style.IsValid() {
			return filter, ErrInvalidStyle
		}
		filter.Style = &style
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.ReservationStatus{status}
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64     `json:"id"`
	Style           string    `json:"style"`
	PoolID          int64     `json:"poolId"`
	ResourceID      *int64    `json:"resourceId,omitempty"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	Date            string    `json:"date"`                // "2025-10-15"
	TimeOfDay       *string   `json:"timeOfDay,omitempty"` // "10:00", только для слотов
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	RequesterID     int64     `json:"requesterId"`
	Notes           *string   `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		Style:              string(r.Style),
		PoolID:             r.PoolID,
		ResourceID:         r.ResourceID,
		StartAt:            r.StartAt,
		EndAt:              r.EndAt,
		Date:               r.Date.Format(domain.DateFormat),
		DurationMinutes:    r.DurationMinutes,
		Status:             string(r.Status),
		RequesterID:        r.RequesterID,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if !r.TimeOfDay.IsZero() {
		resp.TimeOfDay = ptr.Ptr(r.TimeOfDay.String())
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(r.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
