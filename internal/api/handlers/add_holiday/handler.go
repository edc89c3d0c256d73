package add_holiday

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule"
)

const (
	msgInvalidPoolID      = "некорректный ID пула"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidHoliday     = "некорректные данные выходного дня"
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

// Handle PUT /api/v1/pools/{poolId}/holidays/{date}
// Повторный вызов для той же даты обновляет комментарий
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	poolID, err := strconv.ParseInt(vars["poolId"], 10, 64)
	if err != nil || poolID <= 0 {
		h.logger.Warn("PUT /pools/{id}/holidays/{date} - Invalid pool ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPoolID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /pools/{id}/holidays/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PUT /pools/{id}/holidays/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID, vars["date"])
	if err != nil {
		h.logger.Warn("PUT /pools/{id}/holidays/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.AddHoliday(r.Context(), poolID, serviceReq); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /pools/{id}/holidays/{date} - Invalid holiday: pool_id=%d, error=%v", poolID, err)
			handlers.RespondBadRequest(w, msgInvalidHoliday+": "+err.Error())

		default:
			h.logger.Error("PUT /pools/{id}/holidays/{date} - Failed to add holiday: pool_id=%d, error=%v", poolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /pools/{id}/holidays/{date} - Holiday added: pool_id=%d, date=%s, user_id=%d",
		poolID, vars["date"], userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
