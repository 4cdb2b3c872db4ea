package doctors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemedika/appointment-service/internal/domain"
	userRepo "github.com/telemedika/appointment-service/internal/infra/storage/user"
	"github.com/telemedika/appointment-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUserRepo struct {
	doctor  *domain.User
	doctors []*domain.User
}

func (f *fakeUserRepo) GetDoctor(ctx context.Context, id int64) (*domain.User, error) {
	if f.doctor == nil {
		return nil, userRepo.ErrUserNotFound
	}
	return f.doctor, nil
}

func (f *fakeUserRepo) ListDoctorsBySpecialty(ctx context.Context, specialty string) ([]*domain.User, error) {
	return f.doctors, nil
}

type fakeAvailabilityRepo struct {
	windows []*domain.Availability
}

func (f *fakeAvailabilityRepo) GetByDoctor(ctx context.Context, doctorID int64) ([]*domain.Availability, error) {
	return f.windows, nil
}

func verifiedDoctor() *domain.User {
	return &domain.User{
		ID:                 7,
		Name:               "Анна Иванова",
		Role:               domain.RoleDoctor,
		Specialty:          ptr.Ptr("cardiology"),
		VerificationStatus: domain.VerificationVerified,
	}
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{doctor: verifiedDoctor()}, &fakeAvailabilityRepo{}, nopLogger{})

		resp, err := svc.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "cardiology", *resp.Specialty)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{}, &fakeAvailabilityRepo{}, nopLogger{})

		_, err := svc.GetByID(context.Background(), 7)
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})
}

func TestListBySpecialty(t *testing.T) {
	t.Run("lists verified doctors", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{doctors: []*domain.User{verifiedDoctor()}}, &fakeAvailabilityRepo{}, nopLogger{})

		resp, err := svc.ListBySpecialty(context.Background(), "cardiology")
		require.NoError(t, err)
		require.Len(t, resp.Doctors, 1)
		assert.Equal(t, "Анна Иванова", resp.Doctors[0].Name)
	})

	t.Run("blank specialty rejected", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{}, &fakeAvailabilityRepo{}, nopLogger{})

		_, err := svc.ListBySpecialty(context.Background(), "  ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetAvailability(t *testing.T) {
	window := &domain.Availability{
		ID:        1,
		DoctorID:  7,
		StartTime: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 5, 17, 0, 0, 0, time.UTC),
		Status:    domain.AvailabilityAvailable,
	}

	svc := NewService(
		&fakeUserRepo{doctor: verifiedDoctor()},
		&fakeAvailabilityRepo{windows: []*domain.Availability{window}},
		nopLogger{},
	)

	resp, err := svc.GetAvailability(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, string(domain.AvailabilityAvailable), resp.Slots[0].Status)
}
