package book_appointment

import (
	"errors"
	"net/http"

	"github.com/telemedika/appointment-service/internal/api/handlers"
	"github.com/telemedika/appointment-service/internal/api/middleware"
	bookAppointment "github.com/telemedika/appointment-service/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgPatientNotFound     = "пациент не найден"
	msgDoctorNotFound      = "врач не найден"
	msgInvalidInput        = "некорректные параметры приема"
	msgInsufficientCredits = "недостаточно кредитов для записи на прием"
	msgSlotConflict        = "выбранный временной слот уже занят"
	msgLedgerFailure       = "не удалось списать кредиты"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(patientID))
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, bookAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: patient_id=%d, doctor_id=%d", patientID, req.DoctorID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, bookAppointment.ErrInsufficientCredits):
			h.logger.Warn("POST /appointments - Insufficient credits: patient_id=%d", patientID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientCredits)

		case errors.Is(err, bookAppointment.ErrPatientNotFound):
			h.logger.Warn("POST /appointments - Patient not found: patient_id=%d", patientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, bookAppointment.ErrDoctorNotFound):
			h.logger.Warn("POST /appointments - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: patient_id=%d, doctor_id=%d, error=%v",
				patientID, req.DoctorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookAppointment.ErrLedgerFailure):
			h.logger.Error("POST /appointments - Ledger failure: patient_id=%d, error=%v", patientID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgLedgerFailure)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: patient_id=%d, doctor_id=%d, error=%v",
				patientID, req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment booked successfully: appointment_id=%d, patient_id=%d, doctor_id=%d",
		result.ID, patientID, req.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
