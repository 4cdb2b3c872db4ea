package set_availability

import (
	"context"

	"github.com/telemedika/appointment-service/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	// GetDoctor получает верифицированного врача по ID
	GetDoctor(ctx context.Context, id int64) (*domain.User, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, av *domain.Availability) (*domain.Availability, error)
	// DeleteUnreferenced удаляет окна врача без привязанных приемов
	DeleteUnreferenced(ctx context.Context, doctorID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
