package set_availability

import (
	"time"

	setAvailability "github.com/telemedika/appointment-service/internal/usecase/set_availability"
)

// SetAvailabilityRequest HTTP запрос на установку окна доступности
type SetAvailabilityRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// SetAvailabilityResponse HTTP ответ с созданным окном
type SetAvailabilityResponse struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctorId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetAvailabilityRequest) ToUseCaseRequest(doctorID int64) *setAvailability.Request {
	return &setAvailability.Request{
		DoctorID:  doctorID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *setAvailability.Response) *SetAvailabilityResponse {
	return &SetAvailabilityResponse{
		ID:        resp.ID,
		DoctorID:  resp.DoctorID,
		StartTime: resp.StartTime,
		EndTime:   resp.EndTime,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt,
	}
}
