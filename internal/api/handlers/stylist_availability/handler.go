package stylist_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonAvailability/internal/api/handlers"
	checkStylist "github.com/m04kA/SMC-SalonAvailability/internal/usecase/check_stylist"
)

const (
	msgMissingStart = "время начала обязательно"
	msgInvalidQuery = "некорректные параметры: ожидается start в RFC3339 и duration в минутах"
)

type Handler struct {
	useCase CheckStylistUseCase
	logger  Logger
}

func NewHandler(useCase CheckStylistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/availability
// Query params: start (required, RFC3339), duration (minutes), excludeAppointmentId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID := mux.Vars(r)["stylistId"]
	query := r.URL.Query()

	startStr := query.Get("start")
	if startStr == "" {
		h.logger.Warn("GET /stylists/{id}/availability - Missing start: stylist_id=%s", stylistID)
		handlers.RespondBadRequest(w, msgMissingStart)
		return
	}

	useCaseReq, err := ToUseCaseRequest(stylistID, startStr, query.Get("duration"), query.Get("excludeAppointmentId"))
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/availability - Invalid query: stylist_id=%s, error=%v", stylistID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkStylist.ErrInvalidInput):
			h.logger.Warn("GET /stylists/{id}/availability - Invalid input: stylist_id=%s, error=%v", stylistID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /stylists/{id}/availability - Failed to check stylist: stylist_id=%s, error=%v", stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/availability - Checked: stylist_id=%s, start=%s, free=%t", stylistID, startStr, result.Free)
	handlers.RespondJSON(w, http.StatusOK, &StylistAvailabilityResponse{
		StylistID:                stylistID,
		Free:                     result.Free,
		ConflictingAppointmentID: result.ConflictingAppointmentID,
	})
}
