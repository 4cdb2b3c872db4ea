package add_notes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/telemedika/appointment-service/internal/api/handlers"
	"github.com/telemedika/appointment-service/internal/api/middleware"
	"github.com/telemedika/appointment-service/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID приема"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "прием не найден"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "добавлять заметки может только врач"
	msgInvalidState         = "заметки нельзя изменить у отмененного приема"
	msgInvalidNotes         = "некорректный текст заметок"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/notes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/notes - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/notes - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddNotesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/notes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.AddNotes(r.Context(), appointmentID, userID, req.Notes); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/notes - Appointment not found: appointment_id=%d",
				appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/notes - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidState):
			h.logger.Warn("PATCH /appointments/{id}/notes - Invalid state: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidState)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/notes - Invalid notes: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidNotes)

		default:
			h.logger.Error("PATCH /appointments/{id}/notes - Failed to add notes: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/notes - Notes updated successfully: appointment_id=%d, doctor_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
