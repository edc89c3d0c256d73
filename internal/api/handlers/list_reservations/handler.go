package list_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

const (
	msgInvalidPoolID = "некорректный ID пула"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/pools/{poolId}/reservations
// Query params: date | startDate+endDate, status, style, resourceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	poolID, err := strconv.ParseInt(mux.Vars(r)["poolId"], 10, 64)
	if err != nil || poolID <= 0 {
		h.logger.Warn("GET /pools/{id}/reservations - Invalid pool ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPoolID)
		return
	}

	serviceReq, err := ToServiceRequest(poolID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /pools/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /pools/{id}/reservations - Invalid filter: pool_id=%d, error=%v", poolID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /pools/{id}/reservations - Failed to list reservations: pool_id=%d, error=%v", poolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /pools/{id}/reservations - Reservations retrieved successfully: pool_id=%d, count=%d",
		poolID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
