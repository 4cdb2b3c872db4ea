package get_available_slots

import (
	"context"
	"time"

	"github.com/telemedika/appointment-service/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	// GetDoctor получает верифицированного врача по ID
	GetDoctor(ctx context.Context, id int64) (*domain.User, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// GetCurrent получает авторитетное окно доступности врача
	GetCurrent(ctx context.Context, doctorID int64) (*domain.Availability, error)
}

// AppointmentRepository интерфейс репозитория приемов
type AppointmentRepository interface {
	// GetScheduledByDoctor получает активные приемы врача, начинающиеся не позже until
	GetScheduledByDoctor(ctx context.Context, doctorID int64, until time.Time) ([]*domain.Appointment, error)
}

// SlotCache интерфейс кэша сгенерированных слотов
type SlotCache interface {
	Get(ctx context.Context, doctorID int64) ([]domain.DaySlots, bool)
	Set(ctx context.Context, doctorID int64, days []domain.DaySlots)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
