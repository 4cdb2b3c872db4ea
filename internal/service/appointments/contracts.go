package appointments

import (
	"context"
	"time"

	"github.com/telemedika/appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория приемов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	UpdateNotes(ctx context.Context, id int64, notes string) error
}

// SlotCache интерфейс кэша слотов (для инвалидации после отмены)
type SlotCache interface {
	Invalidate(ctx context.Context, doctorID int64)
}

// EventPublisher интерфейс издателя событий приемов
type EventPublisher interface {
	PublishCancelled(ctx context.Context, appt *domain.Appointment)
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
