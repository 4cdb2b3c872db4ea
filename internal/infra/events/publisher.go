package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/telemedika/appointment-service/internal/domain"
)

// Event types published to the appointment events topic
const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AppointmentEvent событие жизненного цикла приема для внешнего
// пайплайна напоминаний
type AppointmentEvent struct {
	Type          string    `json:"type"`
	AppointmentID int64     `json:"appointmentId"`
	PatientID     int64     `json:"patientId"`
	DoctorID      int64     `json:"doctorId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Publisher best-effort издатель событий приемов в kafka.
// Ошибки публикации логируются и никогда не роняют исходную операцию
type Publisher struct {
	writer *kafka.Writer
	log    Logger
}

// NewPublisher создает издателя событий
func NewPublisher(brokers []string, topic string, log Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		log: log,
	}
}

// PublishBooked публикует событие о созданной брони
func (p *Publisher) PublishBooked(ctx context.Context, appt *domain.Appointment) {
	p.publish(ctx, EventAppointmentBooked, appt)
}

// PublishCancelled публикует событие об отмене приема
func (p *Publisher) PublishCancelled(ctx context.Context, appt *domain.Appointment) {
	p.publish(ctx, EventAppointmentCancelled, appt)
}

// Close закрывает kafka writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher заглушка издателя для окружений без kafka
type NoopPublisher struct{}

func (NoopPublisher) PublishBooked(ctx context.Context, appt *domain.Appointment)    {}
func (NoopPublisher) PublishCancelled(ctx context.Context, appt *domain.Appointment) {}

func (p *Publisher) publish(ctx context.Context, eventType string, appt *domain.Appointment) {
	event := AppointmentEvent{
		Type:          eventType,
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
		OccurredAt:    time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("events: marshal %s failed for appointment_id=%d: %v", eventType, appt.ID, err)
		return
	}

	// Ключ - ID врача, чтобы события одного врача шли в один partition
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(appt.DoctorID, 10)),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("events: publish %s failed for appointment_id=%d: %v", eventType, appt.ID, err)
		return
	}

	p.log.Info("events: published %s for appointment_id=%d", eventType, appt.ID)
}
