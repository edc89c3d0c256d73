package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
)

const (
	msgInvalidPoolID      = "некорректный ID пула"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректные настройки расписания"
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

// Handle PUT /api/v1/pools/{poolId}/schedule
// Обновляются только переданные поля; weeklyHours и catalog заменяются целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	poolID, err := strconv.ParseInt(mux.Vars(r)["poolId"], 10, 64)
	if err != nil || poolID <= 0 {
		h.logger.Warn("PUT /pools/{id}/schedule - Invalid pool ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPoolID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /pools/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /pools/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.UpdateSchedule(r.Context(), poolID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /pools/{id}/schedule - Invalid schedule: pool_id=%d, error=%v", poolID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule+": "+err.Error())

		default:
			h.logger.Error("PUT /pools/{id}/schedule - Failed to update schedule: pool_id=%d, error=%v", poolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /pools/{id}/schedule - Schedule updated successfully: pool_id=%d, user_id=%d", poolID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
