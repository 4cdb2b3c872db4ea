package get_availability

import (
	"errors"
	"net/http"

	"github.com/telemedika/appointment-service/internal/api/handlers"
	"github.com/telemedika/appointment-service/internal/api/middleware"
	"github.com/telemedika/appointment-service/internal/service/doctors"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgDoctorNotFound = "врач не найден"
)

type Handler struct {
	service DoctorService
	logger  Logger
}

func NewHandler(service DoctorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем doctorID из контекста (через middleware Auth)
	doctorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /doctors/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), doctorID)
	if err != nil {
		switch {
		case errors.Is(err, doctors.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/availability - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("GET /doctors/availability - Failed to get availability: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/availability - Availability retrieved successfully: doctor_id=%d, windows=%d",
		doctorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
