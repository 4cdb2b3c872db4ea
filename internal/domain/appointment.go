package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment represents a booked consultation between a patient and a doctor.
// Appointments are never physically deleted, only transitioned to a terminal
// status.
type Appointment struct {
	ID                 int64
	PatientID          int64
	DoctorID           int64
	StartTime          time.Time
	EndTime            time.Time
	Status             AppointmentStatus
	PatientDescription *string
	Notes              *string
	VideoSessionID     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled returns true if the appointment is still active
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled
}

// CanBeCompleted returns true if the doctor may mark the appointment completed.
// Completion is only legal once the consultation window has fully elapsed.
func (a *Appointment) CanBeCompleted(now time.Time) bool {
	return a.Status == StatusScheduled && !now.Before(a.EndTime)
}

// CanEditNotes returns true if the doctor may still attach or edit notes
func (a *Appointment) CanEditNotes() bool {
	return a.Status != StatusCancelled
}

// IsParticipant returns true if the user is the patient or the doctor
func (a *Appointment) IsParticipant(userID int64) bool {
	return a.PatientID == userID || a.DoctorID == userID
}
