package book_appointment

import (
	"time"

	bookAppointment "github.com/telemedika/appointment-service/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP запрос на создание приема
type BookAppointmentRequest struct {
	DoctorID    int64     `json:"doctorId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Description *string   `json:"description,omitempty"`
}

// BookAppointmentResponse HTTP ответ с созданным приемом
type BookAppointmentResponse struct {
	ID                 int64     `json:"id"`
	PatientID          int64     `json:"patientId"`
	DoctorID           int64     `json:"doctorId"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	Status             string    `json:"status"`
	PatientDescription *string   `json:"patientDescription,omitempty"`
	VideoSessionID     *string   `json:"videoSessionId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest(patientID int64) *bookAppointment.Request {
	return &bookAppointment.Request{
		PatientID:   patientID,
		DoctorID:    r.DoctorID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Description: r.Description,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *bookAppointment.Response) *BookAppointmentResponse {
	return &BookAppointmentResponse{
		ID:                 resp.ID,
		PatientID:          resp.PatientID,
		DoctorID:           resp.DoctorID,
		StartTime:          resp.StartTime,
		EndTime:            resp.EndTime,
		Status:             resp.Status,
		PatientDescription: resp.PatientDescription,
		VideoSessionID:     resp.VideoSessionID,
		CreatedAt:          resp.CreatedAt,
		UpdatedAt:          resp.UpdatedAt,
	}
}
