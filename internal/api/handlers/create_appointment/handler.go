package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-SalonAvailability/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время: ожидается date=YYYY-MM-DD и startTime=HH:MM"
	msgInvalidInput       = "некорректные данные записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(h.loc)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, &req, err)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%s, branch_id=%s, start=%s",
		result.Appointment.ID, req.BranchID, result.Appointment.AppointmentDate.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// respondError отказы отдаются с сообщением для пользователя, остальные ошибки - 500
func (h *Handler) respondError(w http.ResponseWriter, req *CreateAppointmentRequest, err error) {
	var rejection *createAppointment.RejectionError
	message := msgInvalidInput
	if errors.As(err, &rejection) {
		message = rejection.Message
	}

	switch {
	case errors.Is(err, createAppointment.ErrInvalidInput):
		h.logger.Warn("POST /appointments - Invalid input: branch_id=%s, error=%v", req.BranchID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createAppointment.ErrBranchNotFound):
		h.logger.Warn("POST /appointments - Branch not found: branch_id=%s", req.BranchID)
		handlers.RespondNotFound(w, message)

	case errors.Is(err, createAppointment.ErrStylistBusy):
		h.logger.Warn("POST /appointments - Stylist busy: branch_id=%s, error=%v", req.BranchID, err)
		handlers.RespondConflict(w, message)

	case errors.Is(err, createAppointment.ErrTooLateToBook),
		errors.Is(err, createAppointment.ErrOutsideHours),
		errors.Is(err, createAppointment.ErrBranchClosed):
		h.logger.Warn("POST /appointments - Rejected: branch_id=%s, error=%v", req.BranchID, err)
		handlers.RespondUnprocessable(w, message)

	default:
		h.logger.Error("POST /appointments - Failed to create appointment: branch_id=%s, error=%v", req.BranchID, err)
		handlers.RespondInternalError(w)
	}
}
