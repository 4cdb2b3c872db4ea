package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemedika/appointment-service/internal/domain"
	availabilityRepo "github.com/telemedika/appointment-service/internal/infra/storage/availability"
	userRepo "github.com/telemedika/appointment-service/internal/infra/storage/user"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUserRepo struct {
	doctor *domain.User
	err    error
}

func (f *fakeUserRepo) GetDoctor(ctx context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doctor, nil
}

type fakeAvailabilityRepo struct {
	availability *domain.Availability
	err          error
}

func (f *fakeAvailabilityRepo) GetCurrent(ctx context.Context, doctorID int64) (*domain.Availability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.availability, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	calls        int
}

func (f *fakeAppointmentRepo) GetScheduledByDoctor(ctx context.Context, doctorID int64, until time.Time) ([]*domain.Appointment, error) {
	f.calls++
	return f.appointments, nil
}

type fakeCache struct {
	stored []domain.DaySlots
	hit    bool
	sets   int
}

func (f *fakeCache) Get(ctx context.Context, doctorID int64) ([]domain.DaySlots, bool) {
	if f.hit {
		return f.stored, true
	}
	return nil, false
}

func (f *fakeCache) Set(ctx context.Context, doctorID int64, days []domain.DaySlots) {
	f.stored = days
	f.sets++
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func verifiedDoctor() *domain.User {
	return &domain.User{
		ID:                 7,
		Role:               domain.RoleDoctor,
		VerificationStatus: domain.VerificationVerified,
	}
}

// availabilityWindow окно 09:00-10:30, дата хранения не важна
func availabilityWindow() *domain.Availability {
	return &domain.Availability{
		ID:        1,
		DoctorID:  7,
		StartTime: time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2020, 1, 1, 10, 30, 0, 0, time.UTC),
		Status:    domain.AvailabilityAvailable,
	}
}

func newTestUseCase(users *fakeUserRepo, avs *fakeAvailabilityRepo, appts *fakeAppointmentRepo, cache *fakeCache, now time.Time) *UseCase {
	uc := NewUseCase(users, avs, appts, cache, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_FourDayHorizon(t *testing.T) {
	// 08:00 - до начала окна, все слоты первого дня еще доступны
	now := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	appts := &fakeAppointmentRepo{}
	cache := &fakeCache{}

	uc := newTestUseCase(
		&fakeUserRepo{doctor: verifiedDoctor()},
		&fakeAvailabilityRepo{availability: availabilityWindow()},
		appts, cache, now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7})
	require.NoError(t, err)
	require.Len(t, resp.Days, domain.HorizonDays)

	// Приемы читаются одним запросом на весь горизонт
	assert.Equal(t, 1, appts.calls)

	// Окно 09:00-10:30 дает ровно 3 получасовых слота в каждый день
	for i, day := range resp.Days {
		expectedDate := now.AddDate(0, 0, i).Format(domain.DateFormat)
		assert.Equal(t, expectedDate, day.Date)
		require.Len(t, day.Slots, 3, "day %d", i)

		// Финальный слот заканчивается ровно на границе окна
		last := day.Slots[len(day.Slots)-1]
		assert.Equal(t, 10, last.StartTime.Hour())
		assert.Equal(t, 0, last.StartTime.Minute())
		assert.Equal(t, 30, last.EndTime.Minute())
	}

	assert.Equal(t, 1, cache.sets)
}

func TestExecute_SkipsPastSlotsOfToday(t *testing.T) {
	// 09:35 - слоты 09:00 и 09:30 сегодняшнего дня уже в прошлом
	now := time.Date(2026, 3, 5, 9, 35, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeUserRepo{doctor: verifiedDoctor()},
		&fakeAvailabilityRepo{availability: availabilityWindow()},
		&fakeAppointmentRepo{}, &fakeCache{}, now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7})
	require.NoError(t, err)

	today := resp.Days[0]
	require.Len(t, today.Slots, 1)
	assert.Equal(t, 10, today.Slots[0].StartTime.Hour())

	// Остальные дни не затронуты отсечкой
	assert.Len(t, resp.Days[1].Slots, 3)
}

func TestExecute_EmptyDayStillEmitted(t *testing.T) {
	// 11:00 - окно сегодняшнего дня уже целиком в прошлом
	now := time.Date(2026, 3, 5, 11, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeUserRepo{doctor: verifiedDoctor()},
		&fakeAvailabilityRepo{availability: availabilityWindow()},
		&fakeAppointmentRepo{}, &fakeCache{}, now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7})
	require.NoError(t, err)
	require.Len(t, resp.Days, domain.HorizonDays)

	assert.Empty(t, resp.Days[0].Slots)
	assert.Equal(t, now.Format(domain.DateFormat), resp.Days[0].Date)
	assert.NotEmpty(t, resp.Days[0].DisplayDate)
}

func TestExecute_ExcludesBookedSlots(t *testing.T) {
	now := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{
			ID:        100,
			DoctorID:  7,
			StartTime: time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 30, 0, 0, time.UTC),
			EndTime:   time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.UTC),
			Status:    domain.StatusScheduled,
		},
	}}

	uc := newTestUseCase(
		&fakeUserRepo{doctor: verifiedDoctor()},
		&fakeAvailabilityRepo{availability: availabilityWindow()},
		appts, &fakeCache{}, now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7})
	require.NoError(t, err)

	// Завтра занят слот 09:30-10:00, смежные 09:00 и 10:00 остаются
	tomorrowSlots := resp.Days[1].Slots
	require.Len(t, tomorrowSlots, 2)
	assert.Equal(t, 9, tomorrowSlots[0].StartTime.Hour())
	assert.Equal(t, 0, tomorrowSlots[0].StartTime.Minute())
	assert.Equal(t, 10, tomorrowSlots[1].StartTime.Hour())

	// Сегодня прием не мешает
	assert.Len(t, resp.Days[0].Slots, 3)
}

func TestExecute_SlotLabels(t *testing.T) {
	now := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC) // четверг

	uc := newTestUseCase(
		&fakeUserRepo{doctor: verifiedDoctor()},
		&fakeAvailabilityRepo{availability: availabilityWindow()},
		&fakeAppointmentRepo{}, &fakeCache{}, now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7})
	require.NoError(t, err)

	first := resp.Days[0].Slots[0]
	assert.Equal(t, "9:00 AM - 9:30 AM", first.Formatted)
	assert.Equal(t, "Thursday, March 5", first.Day)
	assert.Equal(t, "Thursday, March 5", resp.Days[0].DisplayDate)
}

func TestExecute_CacheHitSkipsGeneration(t *testing.T) {
	cached := []domain.DaySlots{{Date: "2026-03-05"}}
	cache := &fakeCache{hit: true, stored: cached}
	appts := &fakeAppointmentRepo{}

	uc := newTestUseCase(
		&fakeUserRepo{doctor: verifiedDoctor()},
		&fakeAvailabilityRepo{availability: availabilityWindow()},
		appts, cache,
		time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7})
	require.NoError(t, err)

	assert.Equal(t, cached, resp.Days)
	assert.Equal(t, 0, appts.calls)
	assert.Equal(t, 0, cache.sets)
}

func TestExecute_MissingDoctorNotServedFromCache(t *testing.T) {
	// Кэш еще хранит слоты, но врач уже удален - кэш не должен их отдать
	cache := &fakeCache{hit: true, stored: []domain.DaySlots{{Date: "2026-03-05"}}}

	uc := newTestUseCase(
		&fakeUserRepo{err: userRepo.ErrUserNotFound},
		&fakeAvailabilityRepo{availability: availabilityWindow()},
		&fakeAppointmentRepo{}, cache,
		time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 7})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeUserRepo{err: userRepo.ErrUserNotFound},
		&fakeAvailabilityRepo{},
		&fakeAppointmentRepo{}, &fakeCache{},
		time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 7})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_NoAvailability(t *testing.T) {
	uc := newTestUseCase(
		&fakeUserRepo{doctor: verifiedDoctor()},
		&fakeAvailabilityRepo{err: availabilityRepo.ErrAvailabilityNotFound},
		&fakeAppointmentRepo{}, &fakeCache{},
		time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 7})
	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestExecute_InvalidDoctorID(t *testing.T) {
	uc := newTestUseCase(
		&fakeUserRepo{}, &fakeAvailabilityRepo{},
		&fakeAppointmentRepo{}, &fakeCache{},
		time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
