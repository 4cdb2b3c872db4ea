package domain

// Scheduling constants
const (
	// SlotDurationMinutes фиксированная длительность консультации
	SlotDurationMinutes = 30

	// HorizonDays глубина горизонта генерации слотов (включая сегодня)
	HorizonDays = 4

	// AppointmentCostCredits стоимость одной консультации в кредитах
	AppointmentCostCredits = 2
)

// Business validation constants
const (
	MaxDescriptionLength = 1000
	MaxNotesLength       = 2000
)

// Time format constants
const (
	DateFormat      = "2006-01-02"        // YYYY-MM-DD
	SlotTimeFormat  = "3:04 PM"           // 10:30 AM
	DayLabelFormat  = "Monday, January 2" // Tuesday, March 5
)
