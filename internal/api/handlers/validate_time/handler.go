package validate_time

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonAvailability/internal/api/handlers"
	validateTime "github.com/m04kA/SMC-SalonAvailability/internal/usecase/validate_time"
)

const (
	msgMissingStart = "время начала обязательно"
	msgInvalidQuery = "некорректные параметры: ожидается start в RFC3339 и duration в минутах"
)

type Handler struct {
	useCase ValidateTimeUseCase
	logger  Logger
}

func NewHandler(useCase ValidateTimeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/validate-time
// Query params: start (required, RFC3339), duration (minutes), stylistId
// Результат проверки всегда отдается со статусом 200, причина - в code и message.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID := mux.Vars(r)["branchId"]
	query := r.URL.Query()

	startStr := query.Get("start")
	if startStr == "" {
		h.logger.Warn("GET /branches/{id}/validate-time - Missing start: branch_id=%s", branchID)
		handlers.RespondBadRequest(w, msgMissingStart)
		return
	}

	useCaseReq, err := ToUseCaseRequest(branchID, startStr, query.Get("duration"), query.Get("stylistId"))
	if err != nil {
		h.logger.Warn("GET /branches/{id}/validate-time - Invalid query: branch_id=%s, error=%v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateTime.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/validate-time - Invalid input: branch_id=%s, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /branches/{id}/validate-time - Failed to validate: branch_id=%s, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/validate-time - Validated: branch_id=%s, start=%s, code=%s",
		branchID, startStr, result.Code)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
