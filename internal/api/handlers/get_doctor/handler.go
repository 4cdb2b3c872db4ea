package get_doctor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/telemedika/appointment-service/internal/api/handlers"
	"github.com/telemedika/appointment-service/internal/service/doctors"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgDoctorNotFound  = "врач не найден"
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

// Handle GET /api/v1/doctors/{doctorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем doctorId из URL
	vars := mux.Vars(r)
	doctorIDStr := vars["doctorId"]

	doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /doctors/{id} - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	doctor, err := h.service.GetByID(r.Context(), doctorID)
	if err != nil {
		switch {
		case errors.Is(err, doctors.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{id} - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("GET /doctors/{id} - Failed to get doctor: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id} - Doctor retrieved successfully: doctor_id=%d", doctorID)
	handlers.RespondJSON(w, http.StatusOK, doctor)
}
