package list_doctors

import (
	"errors"
	"net/http"

	"github.com/telemedika/appointment-service/internal/api/handlers"
	"github.com/telemedika/appointment-service/internal/service/doctors"
)

const msgMissingSpecialty = "не указана специальность"

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

// Handle GET /api/v1/doctors?specialty=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")

	result, err := h.service.ListBySpecialty(r.Context(), specialty)
	if err != nil {
		switch {
		case errors.Is(err, doctors.ErrInvalidInput):
			h.logger.Warn("GET /doctors - Missing specialty query parameter")
			handlers.RespondBadRequest(w, msgMissingSpecialty)

		default:
			h.logger.Error("GET /doctors - Failed to list doctors: specialty=%s, error=%v", specialty, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors - Doctors listed successfully: specialty=%s, count=%d",
		specialty, len(result.Doctors))
	handlers.RespondJSON(w, http.StatusOK, result)
}
