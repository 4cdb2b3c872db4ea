package book_appointment

import (
	"context"
	"time"

	"github.com/telemedika/appointment-service/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	// GetPatient получает пользователя с ролью PATIENT
	GetPatient(ctx context.Context, id int64) (*domain.User, error)
	// GetDoctor получает верифицированного врача по ID
	GetDoctor(ctx context.Context, id int64) (*domain.User, error)
}

// AppointmentRepository интерфейс репозитория приемов
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// GetScheduledByDoctor получает активные приемы врача с блокировкой FOR UPDATE внутри транзакции
	GetScheduledByDoctor(ctx context.Context, doctorID int64, until time.Time) ([]*domain.Appointment, error)
	SetVideoSession(ctx context.Context, id int64, sessionID string) error
}

// CreditLedger интерфейс внешнего кредитного леджера
type CreditLedger interface {
	DeductForAppointment(ctx context.Context, patientID, doctorID int64) error
	RefundForAppointment(ctx context.Context, patientID, doctorID int64) error
}

// VideoService интерфейс внешнего видеосервиса
type VideoService interface {
	CreateSession(ctx context.Context) (string, error)
}

// SlotCache интерфейс кэша слотов (для инвалидации после брони)
type SlotCache interface {
	Invalidate(ctx context.Context, doctorID int64)
}

// EventPublisher интерфейс издателя событий приемов
type EventPublisher interface {
	PublishBooked(ctx context.Context, appt *domain.Appointment)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
