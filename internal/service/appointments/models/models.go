package models

import (
	"time"

	"github.com/telemedika/appointment-service/internal/domain"
)

// AppointmentResponse модель приема для ответа сервиса
type AppointmentResponse struct {
	ID                 int64     `json:"id"`
	PatientID          int64     `json:"patientId"`
	DoctorID           int64     `json:"doctorId"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	Status             string    `json:"status"`
	PatientDescription *string   `json:"patientDescription,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	VideoSessionID     *string   `json:"videoSessionId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// AppointmentListResponse список приемов
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 appt.ID,
		PatientID:          appt.PatientID,
		DoctorID:           appt.DoctorID,
		StartTime:          appt.StartTime,
		EndTime:            appt.EndTime,
		Status:             string(appt.Status),
		PatientDescription: appt.PatientDescription,
		Notes:              appt.Notes,
		VideoSessionID:     appt.VideoSessionID,
		CreatedAt:          appt.CreatedAt,
		UpdatedAt:          appt.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		result = append(result, FromDomainAppointment(appt))
	}
	return &AppointmentListResponse{Appointments: result}
}
