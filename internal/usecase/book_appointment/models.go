package book_appointment

import (
	"time"

	"github.com/telemedika/appointment-service/internal/domain"
)

// Request модель запроса на создание приема
type Request struct {
	PatientID   int64     // ID пациента
	DoctorID    int64     // ID врача
	StartTime   time.Time // Начало приема
	EndTime     time.Time // Конец приема
	Description *string   // Жалоба пациента (опционально)
}

// Response модель ответа с созданным приемом
type Response struct {
	ID                 int64
	PatientID          int64
	DoctorID           int64
	StartTime          time.Time
	EndTime            time.Time
	Status             string
	PatientDescription *string
	VideoSessionID     *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func fromDomain(appt *domain.Appointment) *Response {
	return &Response{
		ID:                 appt.ID,
		PatientID:          appt.PatientID,
		DoctorID:           appt.DoctorID,
		StartTime:          appt.StartTime,
		EndTime:            appt.EndTime,
		Status:             string(appt.Status),
		PatientDescription: appt.PatientDescription,
		VideoSessionID:     appt.VideoSessionID,
		CreatedAt:          appt.CreatedAt,
		UpdatedAt:          appt.UpdatedAt,
	}
}
