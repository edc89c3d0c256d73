package get_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

const (
	msgInvalidPoolID = "некорректный ID пула"
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

// Handle GET /api/v1/pools/{poolId}/schedule
// Для пула без сохранённых настроек возвращаются значения по умолчанию (isDefault=true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	poolID, err := strconv.ParseInt(mux.Vars(r)["poolId"], 10, 64)
	if err != nil || poolID <= 0 {
		h.logger.Warn("GET /pools/{id}/schedule - Invalid pool ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPoolID)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), poolID)
	if err != nil {
		h.logger.Error("GET /pools/{id}/schedule - Failed to get schedule: pool_id=%d, error=%v", poolID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /pools/{id}/schedule - Schedule retrieved successfully: pool_id=%d, default=%t",
		poolID, schedule.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
