package book_appointment

import (
	"fmt"

	"github.com/telemedika/appointment-service/internal/domain"
)

// validateRequest валидирует поля запроса; вызывается после резолва пациента
func validateRequest(req *Request) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: doctor, start time, and end time are required", ErrInvalidInput)
	}

	if !req.StartTime.Before(req.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	if req.Description != nil && len(*req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	return nil
}

// findOverlap возвращает первый прием, пересекающийся с запрошенным интервалом
func findOverlap(req *Request, appointments []*domain.Appointment) *domain.Appointment {
	for _, appt := range appointments {
		if domain.OverlapsAppointment(req.StartTime, req.EndTime, appt) {
			return appt
		}
	}
	return nil
}
