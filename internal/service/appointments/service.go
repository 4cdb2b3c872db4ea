package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/telemedika/appointment-service/internal/domain"
	appointmentRepo "github.com/telemedika/appointment-service/internal/infra/storage/appointment"
	"github.com/telemedika/appointment-service/internal/service/appointments/models"
)

// Service сервис жизненного цикла приемов: чтение, отмена, завершение, заметки.
// Оба терминальных статуса (COMPLETED, CANCELLED) необратимы
type Service struct {
	appointmentRepo AppointmentRepository
	cache           SlotCache
	events          EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса приемов
func NewService(
	appointmentRepo AppointmentRepository,
	cache SlotCache,
	events EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		cache:           cache,
		events:          events,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает прием по ID.
// Доступ разрешен только участникам - пациенту или врачу приема
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !appt.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetUserAppointments получает историю приемов пользователя -
// как пациента, так и врача
func (s *Service) GetUserAppointments(ctx context.Context, userID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d", userID)

	appts, err := s.appointmentRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d", len(appts), userID)
	return models.FromDomainAppointmentList(appts), nil
}

// Cancel отменяет прием.
// Отменить может любая из сторон - пациент или врач - пока прием SCHEDULED.
// Политика возврата кредитов принадлежит леджеру; здесь публикуется событие
// отмены и сбрасывается кэш слотов врача
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, userID)

	appt, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !appt.IsParticipant(userID) {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", userID, id)
		return ErrAccessDenied
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
		return ErrInvalidState
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusCancelled
	s.cache.Invalidate(ctx, appt.DoctorID)
	s.events.PublishCancelled(ctx, appt)

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// Complete переводит прием в статус COMPLETED.
// Завершить может только врач приема и только после времени окончания
func (s *Service) Complete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Complete: completing appointment id=%d by user=%d", id, userID)

	appt, err := s.getAppointment(ctx, "Complete", id)
	if err != nil {
		return err
	}

	if appt.DoctorID != userID {
		s.logger.Warn("Complete: access denied for user=%d to appointment id=%d", userID, id)
		return ErrAccessDenied
	}

	if !appt.IsScheduled() {
		s.logger.Warn("Complete: appointment id=%d not in SCHEDULED state, status=%s", id, appt.Status)
		return ErrInvalidState
	}

	now := s.timeProvider.Now()
	if now.Before(appt.EndTime) {
		s.logger.Warn("Complete: appointment id=%d has not ended yet (now=%s, end=%s)",
			id, now, appt.EndTime)
		return ErrTooEarly
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Complete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed appointment id=%d", id)
	return nil
}

// AddNotes добавляет или заменяет заметки врача (last-write-wins).
// Доступно только врачу приема, в любой момент до отмены
func (s *Service) AddNotes(ctx context.Context, id int64, userID int64, notes string) error {
	s.logger.Info("AddNotes: updating notes for appointment id=%d by user=%d", id, userID)

	if strings.TrimSpace(notes) == "" {
		return fmt.Errorf("%w: notes must not be empty", ErrInvalidInput)
	}
	if len(notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	appt, err := s.getAppointment(ctx, "AddNotes", id)
	if err != nil {
		return err
	}

	if appt.DoctorID != userID {
		s.logger.Warn("AddNotes: access denied for user=%d to appointment id=%d", userID, id)
		return ErrAccessDenied
	}

	if !appt.CanEditNotes() {
		s.logger.Warn("AddNotes: appointment id=%d is cancelled, notes are frozen", id)
		return ErrInvalidState
	}

	if err := s.appointmentRepo.UpdateNotes(ctx, id, notes); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("AddNotes: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: AddNotes - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddNotes: successfully updated notes for appointment id=%d", id)
	return nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}
