package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_Lifecycle(t *testing.T) {
	end := time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC)

	t.Run("scheduled appointment can be cancelled", func(t *testing.T) {
		appt := &Appointment{Status: StatusScheduled}
		assert.True(t, appt.CanBeCancelled())
	})

	t.Run("completed appointment cannot be cancelled", func(t *testing.T) {
		appt := &Appointment{Status: StatusCompleted}
		assert.False(t, appt.CanBeCancelled())
	})

	t.Run("cancelled appointment cannot be cancelled again", func(t *testing.T) {
		appt := &Appointment{Status: StatusCancelled}
		assert.False(t, appt.CanBeCancelled())
	})

	t.Run("completion requires elapsed end time", func(t *testing.T) {
		appt := &Appointment{Status: StatusScheduled, EndTime: end}

		assert.False(t, appt.CanBeCompleted(end.Add(-time.Minute)))
		assert.True(t, appt.CanBeCompleted(end))
		assert.True(t, appt.CanBeCompleted(end.Add(time.Hour)))
	})

	t.Run("completion requires scheduled status", func(t *testing.T) {
		appt := &Appointment{Status: StatusCancelled, EndTime: end}
		assert.False(t, appt.CanBeCompleted(end.Add(time.Hour)))
	})

	t.Run("notes are frozen after cancellation", func(t *testing.T) {
		assert.True(t, (&Appointment{Status: StatusScheduled}).CanEditNotes())
		assert.True(t, (&Appointment{Status: StatusCompleted}).CanEditNotes())
		assert.False(t, (&Appointment{Status: StatusCancelled}).CanEditNotes())
	})
}

func TestAppointment_IsParticipant(t *testing.T) {
	appt := &Appointment{PatientID: 10, DoctorID: 20}

	assert.True(t, appt.IsParticipant(10))
	assert.True(t, appt.IsParticipant(20))
	assert.False(t, appt.IsParticipant(30))
}
