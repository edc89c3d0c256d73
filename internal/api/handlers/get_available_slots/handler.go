package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
)

const (
	msgInvalidPoolID  = "некорректный ID пула"
	msgMissingDate    = "дата обязательна"
	msgInvalidParams  = "некорректный формат даты (YYYY-MM-DD) или длительности"
	msgDateInPast     = "дата в прошлом"
	msgDateTooFar     = "дата слишком далеко в будущем"
	msgInvalidRequest = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/pools/{poolId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (optional, минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	poolID, err := strconv.ParseInt(mux.Vars(r)["poolId"], 10, 64)
	if err != nil || poolID <= 0 {
		h.logger.Warn("GET /pools/{id}/available-slots - Invalid pool ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPoolID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /pools/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(poolID, dateStr, r.URL.Query().Get("duration"))
	if err != nil {
		h.logger.Warn("GET /pools/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /pools/{id}/available-slots - Date in past: pool_id=%d, date=%s", poolID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /pools/{id}/available-slots - Date too far: pool_id=%d, date=%s", poolID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /pools/{id}/available-slots - Invalid input: pool_id=%d, error=%v", poolID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /pools/{id}/available-slots - Failed to get slots: pool_id=%d, date=%s, error=%v",
				poolID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /pools/{id}/available-slots - Slots retrieved successfully: pool_id=%d, date=%s, open=%t, slots_count=%d",
		poolID, dateStr, result.Open, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
