package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/telemedika/appointment-service/internal/api/handlers"
	getAvailableSlots "github.com/telemedika/appointment-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgDoctorNotFound  = "врач не найден"
	msgNoAvailability  = "врач не задал расписание приемов"
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

// Handle GET /api/v1/doctors/{doctorId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем doctorId из URL
	vars := mux.Vars(r)
	doctorIDStr := vars["doctorId"]

	doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/available-slots - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{DoctorID: doctorID})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{id}/available-slots - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, getAvailableSlots.ErrNoAvailability):
			h.logger.Warn("GET /doctors/{id}/available-slots - No availability: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgNoAvailability)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/available-slots - Invalid input: doctor_id=%d", doctorID)
			handlers.RespondBadRequest(w, msgInvalidDoctorID)

		default:
			h.logger.Error("GET /doctors/{id}/available-slots - Failed to get slots: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/available-slots - Slots retrieved successfully: doctor_id=%d, days=%d",
		doctorID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(doctorID, result))
}
