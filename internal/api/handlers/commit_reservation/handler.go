package commit_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	commitReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/commit_reservation"
)

const (
	msgInvalidPoolID      = "некорректный ID пула"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры бронирования"
	msgStoreUnavailable   = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase CommitReservationUseCase
	logger  Logger
}

func NewHandler(useCase CommitReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/pools/{poolId}/reservations
// 201 - бронирование записано, 409 - отказ с вердиктом в теле
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	poolID, err := strconv.ParseInt(mux.Vars(r)["poolId"], 10, 64)
	if err != nil || poolID <= 0 {
		h.logger.Warn("POST /pools/{id}/reservations - Invalid pool ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPoolID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /pools/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CommitReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pools/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(poolID, userID)
	if err != nil {
		h.logger.Warn("POST /pools/{id}/reservations - Failed to parse request: pool_id=%d, error=%v", poolID, err)
		handlers.RespondBadRequest(w, msgInvalidRequest+": "+err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, commitReservation.ErrInvalidInput):
			h.logger.Warn("POST /pools/{id}/reservations - Invalid input: pool_id=%d, user_id=%d, error=%v", poolID, userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest+": "+err.Error())

		case errors.Is(err, commitReservation.ErrStoreUnavailable):
			h.logger.Error("POST /pools/{id}/reservations - Store unavailable: pool_id=%d, user_id=%d, error=%v", poolID, userID, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /pools/{id}/reservations - Failed to commit: pool_id=%d, user_id=%d, error=%v", poolID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if !result.Committed {
		h.logger.Info("POST /pools/{id}/reservations - Rejected: pool_id=%d, user_id=%d, reason=%s",
			poolID, userID, result.Verdict.Reason)
		handlers.RespondJSON(w, http.StatusConflict, response)
		return
	}

	h.logger.Info("POST /pools/{id}/reservations - Reservation committed: reservation_id=%d, pool_id=%d, user_id=%d",
		result.Reservation.ID, poolID, userID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
