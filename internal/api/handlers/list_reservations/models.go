package list_reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задаёт одну дату; startDate и endDate задают период
func ToServiceRequest(poolID int64, query url.Values) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{PoolID: poolID}

	if resourceIDStr := query.Get("resourceId"); resourceIDStr != "" {
		resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResourceID = &resourceID
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if style := query.Get("style"); style != "" {
		req.Style = &style
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
		return req, nil
	}

	if startStr := query.Get("startDate"); startStr != "" {
		start, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &start
	}
	if endStr := query.Get("endDate"); endStr != "" {
		end, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &end
	}

	return req, nil
}
