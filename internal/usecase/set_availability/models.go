package set_availability

import (
	"time"

	"github.com/telemedika/appointment-service/internal/domain"
)

// Request модель запроса на установку окна доступности
type Request struct {
	DoctorID  int64     // ID врача (аутентифицированный вызывающий)
	StartTime time.Time // Начало ежедневного окна (значима только время суток)
	EndTime   time.Time // Конец ежедневного окна
}

// Response модель ответа с созданным окном доступности
type Response struct {
	ID        int64
	DoctorID  int64
	StartTime time.Time
	EndTime   time.Time
	Status    string
	CreatedAt time.Time
}

func fromDomain(av *domain.Availability) *Response {
	return &Response{
		ID:        av.ID,
		DoctorID:  av.DoctorID,
		StartTime: av.StartTime,
		EndTime:   av.EndTime,
		Status:    string(av.Status),
		CreatedAt: av.CreatedAt,
	}
}
