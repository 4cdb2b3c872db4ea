package domain

import "time"

// Overlaps reports whether the candidate interval [candStart, candEnd)
// conflicts with an existing interval [exStart, exEnd).
//
// Two intervals conflict iff any of:
//   - the candidate start falls inside the existing interval,
//   - the candidate end falls inside the existing interval,
//   - the candidate fully contains the existing interval.
//
// Back-to-back intervals (candEnd == exStart or candStart == exEnd)
// do NOT conflict: adjacency is allowed, true overlap is not.
func Overlaps(candStart, candEnd, exStart, exEnd time.Time) bool {
	// Начало кандидата внутри существующего интервала
	if !candStart.Before(exStart) && candStart.Before(exEnd) {
		return true
	}

	// Конец кандидата внутри существующего интервала
	if candEnd.After(exStart) && !candEnd.After(exEnd) {
		return true
	}

	// Кандидат полностью накрывает существующий интервал
	if !candStart.After(exStart) && !candEnd.Before(exEnd) {
		return true
	}

	return false
}

// OverlapsAppointment reports whether the candidate interval conflicts with
// the given appointment's interval
func OverlapsAppointment(candStart, candEnd time.Time, appt *Appointment) bool {
	return Overlaps(candStart, candEnd, appt.StartTime, appt.EndTime)
}
