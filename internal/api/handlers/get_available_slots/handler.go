package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonAvailability/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonAvailability/internal/usecase/get_available_slots"
)

const (
	msgMissingDate    = "дата обязательна"
	msgInvalidQuery   = "некорректные параметры: ожидается date=YYYY-MM-DD и duration в минутах"
	msgInvalidRequest = "некорректный запрос слотов"
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

// Handle GET /api/v1/branches/{branchId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (minutes), stylistId (можно повторять)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID := mux.Vars(r)["branchId"]
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /branches/{id}/available-slots - Missing date: branch_id=%s", branchID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(branchID, dateStr, query.Get("duration"), query["stylistId"])
	if err != nil {
		h.logger.Warn("GET /branches/{id}/available-slots - Invalid query: branch_id=%s, error=%v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Вызываем use case
	result, err := h.useCase.ExecuteTeam(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/available-slots - Invalid request: branch_id=%s, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /branches/{id}/available-slots - Failed to get slots: branch_id=%s, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Причина отсутствия слотов (закрыто, праздник, ошибка загрузки) отдается в message со статусом 200
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /branches/{id}/available-slots - Slots retrieved: branch_id=%s, date=%s, slots=%d, available=%d",
		branchID, response.Date, len(response.Slots), response.AvailableCount)
	handlers.RespondJSON(w, http.StatusOK, response)
}
