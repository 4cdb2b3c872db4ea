package doctors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "github.com/telemedika/appointment-service/internal/infra/storage/user"
	"github.com/telemedika/appointment-service/internal/service/doctors/models"
)

// Service сервис для чтения профилей врачей и их окон доступности
type Service struct {
	userRepo         UserRepository
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса врачей
func NewService(
	userRepo UserRepository,
	availabilityRepo AvailabilityRepository,
	logger Logger,
) *Service {
	return &Service{
		userRepo:         userRepo,
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// GetByID получает публичный профиль верифицированного врача
func (s *Service) GetByID(ctx context.Context, doctorID int64) (*models.DoctorResponse, error) {
	s.logger.Info("GetByID: fetching doctor id=%d", doctorID)

	doctor, err := s.userRepo.GetDoctor(ctx, doctorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetByID: doctor id=%d not found", doctorID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("GetByID: repository error for doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUser(doctor), nil
}

// ListBySpecialty получает верифицированных врачей по специальности
func (s *Service) ListBySpecialty(ctx context.Context, specialty string) (*models.DoctorListResponse, error) {
	s.logger.Info("ListBySpecialty: fetching doctors, specialty=%s", specialty)

	if strings.TrimSpace(specialty) == "" {
		return nil, fmt.Errorf("%w: specialty is required", ErrInvalidInput)
	}

	doctorList, err := s.userRepo.ListDoctorsBySpecialty(ctx, specialty)
	if err != nil {
		s.logger.Error("ListBySpecialty: repository error for specialty=%s: %v", specialty, err)
		return nil, fmt.Errorf("%w: ListBySpecialty - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBySpecialty: fetched %d doctors for specialty=%s", len(doctorList), specialty)
	return models.FromDomainUserList(doctorList), nil
}

// GetAvailability получает окна доступности врача для его кабинета
func (s *Service) GetAvailability(ctx context.Context, doctorID int64) (*models.AvailabilityListResponse, error) {
	s.logger.Info("GetAvailability: fetching availability for doctor id=%d", doctorID)

	if _, err := s.userRepo.GetDoctor(ctx, doctorID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetAvailability: doctor id=%d not found", doctorID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("GetAvailability: repository error for doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	slots, err := s.availabilityRepo.GetByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("GetAvailability: repository error for doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailabilityList(slots), nil
}
