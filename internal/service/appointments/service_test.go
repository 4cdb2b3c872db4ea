package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemedika/appointment-service/internal/domain"
	appointmentRepo "github.com/telemedika/appointment-service/internal/infra/storage/appointment"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAppointmentRepo struct {
	appt      *domain.Appointment
	byUser    []*domain.Appointment
	statusSet *domain.AppointmentStatus
	notesSet  *string
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.appt == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return f.appt, nil
}

func (f *fakeAppointmentRepo) GetByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	return f.byUser, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	f.statusSet = &status
	return nil
}

func (f *fakeAppointmentRepo) UpdateNotes(ctx context.Context, id int64, notes string) error {
	f.notesSet = &notes
	return nil
}

type fakeCache struct {
	invalidated []int64
}

func (f *fakeCache) Invalidate(ctx context.Context, doctorID int64) {
	f.invalidated = append(f.invalidated, doctorID)
}

type fakeEvents struct {
	cancelled []*domain.Appointment
}

func (f *fakeEvents) PublishCancelled(ctx context.Context, appt *domain.Appointment) {
	f.cancelled = append(f.cancelled, appt)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func scheduledAppointment() *domain.Appointment {
	start := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:        1,
		PatientID: 10,
		DoctorID:  7,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    domain.StatusScheduled,
	}
}

func newTestService(repo *fakeAppointmentRepo, cache *fakeCache, events *fakeEvents, now time.Time) *Service {
	svc := NewService(repo, cache, events, nopLogger{})
	svc.timeProvider = fixedTime{now: now}
	return svc
}

func TestGetByID(t *testing.T) {
	appt := scheduledAppointment()
	svc := newTestService(&fakeAppointmentRepo{appt: appt}, &fakeCache{}, &fakeEvents{}, time.Now())

	t.Run("patient can view", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, appt.ID, resp.ID)
	})

	t.Run("doctor can view", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 7)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 999)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing appointment", func(t *testing.T) {
		empty := newTestService(&fakeAppointmentRepo{}, &fakeCache{}, &fakeEvents{}, time.Now())
		_, err := empty.GetByID(context.Background(), 1, 10)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("participant cancels scheduled appointment", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appt: scheduledAppointment()}
		cache := &fakeCache{}
		events := &fakeEvents{}
		svc := newTestService(repo, cache, events, time.Now())

		err := svc.Cancel(context.Background(), 1, 10)
		require.NoError(t, err)

		require.NotNil(t, repo.statusSet)
		assert.Equal(t, domain.StatusCancelled, *repo.statusSet)
		assert.Equal(t, []int64{7}, cache.invalidated)
		require.Len(t, events.cancelled, 1)
		assert.Equal(t, domain.StatusCancelled, events.cancelled[0].Status)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		svc := newTestService(&fakeAppointmentRepo{appt: scheduledAppointment()}, &fakeCache{}, &fakeEvents{}, time.Now())
		err := svc.Cancel(context.Background(), 1, 999)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("completed appointment cannot be cancelled", func(t *testing.T) {
		appt := scheduledAppointment()
		appt.Status = domain.StatusCompleted
		svc := newTestService(&fakeAppointmentRepo{appt: appt}, &fakeCache{}, &fakeEvents{}, time.Now())

		err := svc.Cancel(context.Background(), 1, 10)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestComplete(t *testing.T) {
	appt := scheduledAppointment()

	t.Run("doctor completes after end time", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appt: scheduledAppointment()}
		svc := newTestService(repo, &fakeCache{}, &fakeEvents{}, appt.EndTime.Add(time.Minute))

		err := svc.Complete(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, *repo.statusSet)
	})

	t.Run("completion exactly at end time", func(t *testing.T) {
		svc := newTestService(&fakeAppointmentRepo{appt: scheduledAppointment()}, &fakeCache{}, &fakeEvents{}, appt.EndTime)
		assert.NoError(t, svc.Complete(context.Background(), 1, 7))
	})

	t.Run("too early", func(t *testing.T) {
		svc := newTestService(&fakeAppointmentRepo{appt: scheduledAppointment()}, &fakeCache{}, &fakeEvents{}, appt.EndTime.Add(-time.Minute))
		err := svc.Complete(context.Background(), 1, 7)
		assert.ErrorIs(t, err, ErrTooEarly)
	})

	t.Run("patient cannot complete", func(t *testing.T) {
		svc := newTestService(&fakeAppointmentRepo{appt: scheduledAppointment()}, &fakeCache{}, &fakeEvents{}, appt.EndTime.Add(time.Hour))
		err := svc.Complete(context.Background(), 1, 10)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("cancelled appointment cannot be completed", func(t *testing.T) {
		cancelled := scheduledAppointment()
		cancelled.Status = domain.StatusCancelled
		svc := newTestService(&fakeAppointmentRepo{appt: cancelled}, &fakeCache{}, &fakeEvents{}, appt.EndTime.Add(time.Hour))

		err := svc.Complete(context.Background(), 1, 7)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestAddNotes(t *testing.T) {
	t.Run("doctor adds notes", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appt: scheduledAppointment()}
		svc := newTestService(repo, &fakeCache{}, &fakeEvents{}, time.Now())

		err := svc.AddNotes(context.Background(), 1, 7, "Пациенту рекомендован повторный осмотр")
		require.NoError(t, err)
		require.NotNil(t, repo.notesSet)
		assert.Equal(t, "Пациенту рекомендован повторный осмотр", *repo.notesSet)
	})

	t.Run("notes allowed after completion", func(t *testing.T) {
		appt := scheduledAppointment()
		appt.Status = domain.StatusCompleted
		svc := newTestService(&fakeAppointmentRepo{appt: appt}, &fakeCache{}, &fakeEvents{}, time.Now())

		assert.NoError(t, svc.AddNotes(context.Background(), 1, 7, "итоги приема"))
	})

	t.Run("notes frozen after cancellation", func(t *testing.T) {
		appt := scheduledAppointment()
		appt.Status = domain.StatusCancelled
		svc := newTestService(&fakeAppointmentRepo{appt: appt}, &fakeCache{}, &fakeEvents{}, time.Now())

		err := svc.AddNotes(context.Background(), 1, 7, "итоги приема")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("patient cannot add notes", func(t *testing.T) {
		svc := newTestService(&fakeAppointmentRepo{appt: scheduledAppointment()}, &fakeCache{}, &fakeEvents{}, time.Now())
		err := svc.AddNotes(context.Background(), 1, 10, "итоги приема")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("blank notes rejected", func(t *testing.T) {
		svc := newTestService(&fakeAppointmentRepo{appt: scheduledAppointment()}, &fakeCache{}, &fakeEvents{}, time.Now())
		err := svc.AddNotes(context.Background(), 1, 7, "   ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetUserAppointments(t *testing.T) {
	repo := &fakeAppointmentRepo{byUser: []*domain.Appointment{scheduledAppointment()}}
	svc := newTestService(repo, &fakeCache{}, &fakeEvents{}, time.Now())

	resp, err := svc.GetUserAppointments(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)
}
