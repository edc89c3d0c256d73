package remove_holiday

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule"
)

const (
	msgInvalidPoolID = "некорректный ID пула"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound      = "выходной день не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/pools/{poolId}/holidays/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	poolID, err := strconv.ParseInt(vars["poolId"], 10, 64)
	if err != nil || poolID <= 0 {
		h.logger.Warn("DELETE /pools/{id}/holidays/{date} - Invalid pool ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPoolID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /pools/{id}/holidays/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /pools/{id}/holidays/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.RemoveHoliday(r.Context(), poolID, date, userID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrHolidayNotFound):
			h.logger.Warn("DELETE /pools/{id}/holidays/{date} - Holiday not found: pool_id=%d, date=%s", poolID, vars["date"])
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /pools/{id}/holidays/{date} - Failed to remove holiday: pool_id=%d, error=%v", poolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /pools/{id}/holidays/{date} - Holiday removed: pool_id=%d, date=%s, user_id=%d",
		poolID, vars["date"], userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
