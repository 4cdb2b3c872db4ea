package get_available_slots

import (
	"time"

	"github.com/telemedika/appointment-service/internal/domain"
)

// generateDaySlots генерирует свободные слоты одного дня горизонта.
//
// Окно доступности заякоривается на календарную дату дня, затем окно
// обходится фиксированным шагом в domain.SlotDurationMinutes. Кандидат
// отбрасывается, если начинается раньше now (ретро-бронирование запрещено,
// включая прошедшие минуты текущего дня) или пересекается с активным
// приемом врача.
//
// Условие цикла допускает финальный слот, заканчивающийся ровно на границе
// окна; неполные слоты короче шага не генерируются никогда
func generateDaySlots(
	availability *domain.Availability,
	day time.Time,
	now time.Time,
	appointments []*domain.Appointment,
) []domain.Slot {
	windowStart, windowEnd := availability.AnchorTo(day)
	step := domain.SlotDurationMinutes * time.Minute

	slots := make([]domain.Slot, 0)

	current := windowStart
	for next := current.Add(step); next.Before(windowEnd) || next.Equal(windowEnd); next = current.Add(step) {
		// Пропускаем слоты в прошлом
		if current.Before(now) {
			current = next
			continue
		}

		if !overlapsAny(current, next, appointments) {
			slots = append(slots, domain.Slot{
				StartTime: current,
				EndTime:   next,
				Formatted: formatSlotLabel(current, next),
				Day:       current.Format(domain.DayLabelFormat),
			})
		}

		current = next
	}

	return slots
}

// overlapsAny проверяет пересечение кандидата с любым из приемов
func overlapsAny(candStart, candEnd time.Time, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if domain.OverlapsAppointment(candStart, candEnd, appt) {
			return true
		}
	}
	return false
}

// formatSlotLabel возвращает человекочитаемую метку интервала слота
func formatSlotLabel(start, end time.Time) string {
	return start.Format(domain.SlotTimeFormat) + " - " + end.Format(domain.SlotTimeFormat)
}

// endOfDay возвращает последний момент календарного дня
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
