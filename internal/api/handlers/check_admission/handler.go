package check_admission

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	checkAdmission "github.com/m04kA/SMC-ReservationService/internal/usecase/check_admission"
)

const (
	msgInvalidPoolID      = "некорректный ID пула"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры бронирования"
	msgStoreUnavailable   = "хранилище временно недоступно"
)

type Handler struct {
	useCase CheckAdmissionUseCase
	logger  Logger
}

func NewHandler(useCase CheckAdmissionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/pools/{poolId}/admission-checks
// Отказ по бизнес-правилам возвращается со статусом 200 и вердиктом в теле
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	poolID, err := strconv.ParseInt(mux.Vars(r)["poolId"], 10, 64)
	if err != nil || poolID <= 0 {
		h.logger.Warn("POST /pools/{id}/admission-checks - Invalid pool ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPoolID)
		return
	}

	var req CheckAdmissionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pools/{id}/admission-checks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(poolID)
	if err != nil {
		h.logger.Warn("POST /pools/{id}/admission-checks - Failed to parse request: pool_id=%d, error=%v", poolID, err)
		handlers.RespondBadRequest(w, msgInvalidRequest+": "+err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAdmission.ErrInvalidInput):
			h.logger.Warn("POST /pools/{id}/admission-checks - Invalid input: pool_id=%d, error=%v", poolID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest+": "+err.Error())

		case errors.Is(err, checkAdmission.ErrStoreUnavailable):
			h.logger.Error("POST /pools/{id}/admission-checks - Store unavailable: pool_id=%d, error=%v", poolID, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /pools/{id}/admission-checks - Failed to check admission: pool_id=%d, error=%v", poolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pools/{id}/admission-checks - Checked: pool_id=%d, style=%s, admitted=%t, reason=%s",
		poolID, useCaseReq.Style, result.Verdict.Admitted, result.Verdict.Reason)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainVerdict(result.Verdict))
}
