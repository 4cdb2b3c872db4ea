package set_availability

import (
	"errors"
	"net/http"

	"github.com/telemedika/appointment-service/internal/api/handlers"
	"github.com/telemedika/appointment-service/internal/api/middleware"
	setAvailability "github.com/telemedika/appointment-service/internal/usecase/set_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgDoctorNotFound     = "врач не найден"
	msgInvalidWindow      = "некорректное окно доступности"
)

type Handler struct {
	useCase SetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase SetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/doctors/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем doctorID из контекста (через middleware Auth)
	doctorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /doctors/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctors/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(doctorID))
	if err != nil {
		switch {
		case errors.Is(err, setAvailability.ErrDoctorNotFound):
			h.logger.Warn("PUT /doctors/availability - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, setAvailability.ErrInvalidInput):
			h.logger.Warn("PUT /doctors/availability - Invalid window: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("PUT /doctors/availability - Failed to set availability: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /doctors/availability - Availability set successfully: availability_id=%d, doctor_id=%d",
		result.ID, doctorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
