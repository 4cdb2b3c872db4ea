package domain

import "time"

// Slot represents an ephemeral bookable interval derived from an availability
// window. Slots are generated per request and never persisted.
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Formatted string // "10:00 AM - 10:30 AM"
	Day       string // "Tuesday, March 5"
}

// DaySlots groups the slots of a single horizon day.
// A day with zero bookable slots is still emitted with an empty list.
type DaySlots struct {
	Date        string // "2025-03-05"
	DisplayDate string // "Tuesday, March 5"
	Slots       []Slot
}
