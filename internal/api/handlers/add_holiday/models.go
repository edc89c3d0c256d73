package add_holiday

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
)

// AddHolidayRequest HTTP request model
// Тело запроса опционально
type AddHolidayRequest struct {
	Note *string `json:"note,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddHolidayRequest) ToServiceRequest(userID int64, dateStr string) (*models.HolidayRequest, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &models.HolidayRequest{
		UserID: userID,
		Date:   date,
		Note:   r.Note,
	}, nil
}
