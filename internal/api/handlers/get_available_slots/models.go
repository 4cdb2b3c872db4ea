package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/telemedika/appointment-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	DoctorID int64     `json:"doctorId"`
	Days     []DaySlot `json:"days"`
}

// DaySlot слоты одного дня горизонта
type DaySlot struct {
	Date        string          `json:"date"`
	DisplayDate string          `json:"displayDate"`
	Slots       []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Formatted string    `json:"formatted"`
	Day       string    `json:"day"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(doctorID int64, resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	days := make([]DaySlot, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]AvailableSlot, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = AvailableSlot{
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				Formatted: slot.Formatted,
				Day:       slot.Day,
			}
		}
		days[i] = DaySlot{
			Date:        day.Date,
			DisplayDate: day.DisplayDate,
			Slots:       slots,
		}
	}

	return &AvailableSlotsResponse{
		DoctorID: doctorID,
		Days:     days,
	}
}
