package get_available_slots

import "github.com/telemedika/appointment-service/internal/domain"

// Request модель запроса на получение доступных слотов
type Request struct {
	DoctorID int64 // ID врача
}

// Response модель ответа: дни горизонта со слотами,
// в хронологическом порядке, включая дни без слотов
type Response struct {
	Days []domain.DaySlots
}
