package domain

import "time"

// AvailabilityStatus represents the status of an availability window
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "AVAILABLE"
)

// Availability represents a doctor's recurring daily open window.
// Only the time-of-day component of StartTime/EndTime is meaningful:
// the date is discarded and re-applied for every generated horizon day.
type Availability struct {
	ID        int64
	DoctorID  int64
	StartTime time.Time
	EndTime   time.Time
	Status    AvailabilityStatus
	CreatedAt time.Time
}

// AnchorTo projects the window's time-of-day onto the given calendar day.
// The result carries the day's date and location, not the stored one.
func (a *Availability) AnchorTo(day time.Time) (start, end time.Time) {
	y, m, d := day.Date()
	loc := day.Location()

	start = time.Date(y, m, d,
		a.StartTime.Hour(), a.StartTime.Minute(), a.StartTime.Second(), 0, loc)
	end = time.Date(y, m, d,
		a.EndTime.Hour(), a.EndTime.Minute(), a.EndTime.Second(), 0, loc)
	return start, end
}
