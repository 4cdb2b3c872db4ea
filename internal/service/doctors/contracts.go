package doctors

import (
	"context"

	"github.com/telemedika/appointment-service/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetDoctor(ctx context.Context, id int64) (*domain.User, error)
	ListDoctorsBySpecialty(ctx context.Context, specialty string) ([]*domain.User, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByDoctor(ctx context.Context, doctorID int64) ([]*domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
