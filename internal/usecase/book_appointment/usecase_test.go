package book_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemedika/appointment-service/internal/domain"
	appointmentRepo "github.com/telemedika/appointment-service/internal/infra/storage/appointment"
	userRepo "github.com/telemedika/appointment-service/internal/infra/storage/user"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUserRepo struct {
	patient *domain.User
	doctor  *domain.User
}

func (f *fakeUserRepo) GetPatient(ctx context.Context, id int64) (*domain.User, error) {
	if f.patient == nil {
		return nil, userRepo.ErrUserNotFound
	}
	return f.patient, nil
}

func (f *fakeUserRepo) GetDoctor(ctx context.Context, id int64) (*domain.User, error) {
	if f.doctor == nil {
		return nil, userRepo.ErrUserNotFound
	}
	return f.doctor, nil
}

// memAppointmentRepo потокобезопасное in-memory хранилище приемов
type memAppointmentRepo struct {
	mu        sync.Mutex
	appts     []*domain.Appointment
	nextID    int64
	createErr error
	videoErr  error
	sessions  map[int64]string
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{nextID: 1, sessions: make(map[int64]string)}
}

func (m *memAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return nil, m.createErr
	}

	created := *appt
	created.ID = m.nextID
	m.nextID++
	m.appts = append(m.appts, &created)
	return &created, nil
}

func (m *memAppointmentRepo) GetScheduledByDoctor(ctx context.Context, doctorID int64, until time.Time) ([]*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Appointment, 0, len(m.appts))
	for _, appt := range m.appts {
		if appt.DoctorID == doctorID && appt.Status == domain.StatusScheduled {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (m *memAppointmentRepo) SetVideoSession(ctx context.Context, id int64, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.videoErr != nil {
		return m.videoErr
	}
	m.sessions[id] = sessionID
	return nil
}

type fakeLedger struct {
	mu        sync.Mutex
	deducts   int
	refunds   int
	deductErr error
	refundErr error
}

func (f *fakeLedger) DeductForAppointment(ctx context.Context, patientID, doctorID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deductErr != nil {
		return f.deductErr
	}
	f.deducts++
	return nil
}

func (f *fakeLedger) RefundForAppointment(ctx context.Context, patientID, doctorID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.refundErr != nil {
		return f.refundErr
	}
	f.refunds++
	return nil
}

type fakeVideo struct {
	sessionID string
	err       error
}

func (f *fakeVideo) CreateSession(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.sessionID, nil
}

type fakeCache struct {
	mu          sync.Mutex
	invalidated []int64
}

func (f *fakeCache) Invalidate(ctx context.Context, doctorID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, doctorID)
}

type fakeEvents struct {
	mu     sync.Mutex
	booked []*domain.Appointment
}

func (f *fakeEvents) PublishBooked(ctx context.Context, appt *domain.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked = append(f.booked, appt)
}

// fakeTxManager сериализует конкурентные "транзакции" мьютексом -
// той же гарантией взаимного исключения, что дает serializable в postgres
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixtures struct {
	users  *fakeUserRepo
	appts  *memAppointmentRepo
	ledger *fakeLedger
	video  *fakeVideo
	cache  *fakeCache
	events *fakeEvents
}

func newFixtures() *fixtures {
	return &fixtures{
		users: &fakeUserRepo{
			patient: &domain.User{ID: 10, Role: domain.RolePatient, Credits: 5},
			doctor: &domain.User{
				ID:                 7,
				Role:               domain.RoleDoctor,
				VerificationStatus: domain.VerificationVerified,
			},
		},
		appts:  newMemAppointmentRepo(),
		ledger: &fakeLedger{},
		video:  &fakeVideo{sessionID: "sess-1"},
		cache:  &fakeCache{},
		events: &fakeEvents{},
	}
}

func newTestUseCase(f *fixtures) *UseCase {
	return NewUseCase(f.users, f.appts, f.ledger, f.video, f.cache, f.events, &fakeTxManager{}, nopLogger{})
}

func slotRequest() *Request {
	start := time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC)
	return &Request{
		PatientID: 10,
		DoctorID:  7,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixtures()
	uc := newTestUseCase(f)

	resp, err := uc.Execute(context.Background(), slotRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.PatientID)
	assert.Equal(t, int64(7), resp.DoctorID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)

	assert.Equal(t, 1, f.ledger.deducts)
	assert.Equal(t, 0, f.ledger.refunds)
	assert.Equal(t, []int64{7}, f.cache.invalidated)
	require.Len(t, f.events.booked, 1)

	// Видеосессия привязана best-effort после коммита
	require.NotNil(t, resp.VideoSessionID)
	assert.Equal(t, "sess-1", *resp.VideoSessionID)
	assert.Equal(t, "sess-1", f.appts.sessions[resp.ID])
}

func TestExecute_InsufficientCredits(t *testing.T) {
	f := newFixtures()
	f.users.patient.Credits = 1
	uc := newTestUseCase(f)

	_, err := uc.Execute(context.Background(), slotRequest())
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	// До леджера и вставки дело не дошло
	assert.Equal(t, 0, f.ledger.deducts)
	assert.Empty(t, f.appts.appts)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixtures()
	req := slotRequest()

	// Врач уже занят пересекающимся приемом
	_, err := f.appts.Create(context.Background(), &domain.Appointment{
		PatientID: 99,
		DoctorID:  7,
		StartTime: req.StartTime.Add(15 * time.Minute),
		EndTime:   req.EndTime.Add(15 * time.Minute),
		Status:    domain.StatusScheduled,
	})
	require.NoError(t, err)

	uc := newTestUseCase(f)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Конфликт обнаружен до списания кредитов
	assert.Equal(t, 0, f.ledger.deducts)
	assert.Equal(t, 0, f.ledger.refunds)
}

func TestExecute_AdjacentAppointmentAllowed(t *testing.T) {
	f := newFixtures()
	req := slotRequest()

	// Смежный прием встык не конфликтует
	_, err := f.appts.Create(context.Background(), &domain.Appointment{
		PatientID: 99,
		DoctorID:  7,
		StartTime: req.EndTime,
		EndTime:   req.EndTime.Add(30 * time.Minute),
		Status:    domain.StatusScheduled,
	})
	require.NoError(t, err)

	uc := newTestUseCase(f)
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_LedgerRejectsDeduction(t *testing.T) {
	f := newFixtures()
	f.ledger.deductErr = assert.AnError
	uc := newTestUseCase(f)

	_, err := uc.Execute(context.Background(), slotRequest())
	assert.ErrorIs(t, err, ErrLedgerFailure)

	// Списания не было - возврат не нужен
	assert.Equal(t, 0, f.ledger.refunds)
	assert.Empty(t, f.appts.appts)
}

func TestExecute_RefundAfterFailedInsert(t *testing.T) {
	f := newFixtures()
	f.appts.createErr = appointmentRepo.ErrSlotTaken
	uc := newTestUseCase(f)

	_, err := uc.Execute(context.Background(), slotRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Кредиты были списаны до вставки - выполнен компенсирующий возврат
	assert.Equal(t, 1, f.ledger.deducts)
	assert.Equal(t, 1, f.ledger.refunds)
}

func TestExecute_VideoFailureDoesNotFailBooking(t *testing.T) {
	f := newFixtures()
	f.video.err = assert.AnError
	uc := newTestUseCase(f)

	resp, err := uc.Execute(context.Background(), slotRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.VideoSessionID)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(newFixtures())

	t.Run("start after end", func(t *testing.T) {
		req := slotRequest()
		req.StartTime, req.EndTime = req.EndTime, req.StartTime

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero times", func(t *testing.T) {
		req := slotRequest()
		req.StartTime = time.Time{}
		req.EndTime = time.Time{}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("oversized description", func(t *testing.T) {
		req := slotRequest()
		long := string(make([]byte, domain.MaxDescriptionLength+1))
		req.Description = &long

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_MissingPatientTakesPrecedenceOverValidation(t *testing.T) {
	f := newFixtures()
	f.users.patient = nil
	uc := newTestUseCase(f)

	// Пациента нет И интервал кривой - побеждает "пациент не найден"
	req := slotRequest()
	req.StartTime, req.EndTime = req.EndTime, req.StartTime

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestExecute_ConcurrentBookingOfSameSlot(t *testing.T) {
	f := newFixtures()
	uc := newTestUseCase(f)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), slotRequest())
		}(i)
	}
	wg.Wait()

	// Ровно одна бронь проходит, вторая получает конфликт
	var okCount, conflictCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, ErrSlotConflict):
			conflictCount++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, conflictCount)

	// Второе бронирование отвергнуто до списания
	assert.Equal(t, 1, f.ledger.deducts)
	assert.Equal(t, 0, f.ledger.refunds)
	assert.Len(t, f.appts.appts, 1)
}
