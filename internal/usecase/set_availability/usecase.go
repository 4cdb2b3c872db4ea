package set_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/telemedika/appointment-service/internal/domain"
	userRepo "github.com/telemedika/appointment-service/internal/infra/storage/user"
)

// UseCase use case для установки окна доступности врача
type UseCase struct {
	userRepo         UserRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:         userRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case установки окна доступности.
//
// Переустановка окна удаляет прежние окна врача, на которые не ссылается
// ни один прием; окна с привязанными приемами сохраняются. Врач может
// накопить несколько исторических окон - осознанный компромисс в пользу
// целостности приемов, а не чистоты таблицы доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetAvailability: doctor=%d, start=%s, end=%s",
		req.DoctorID, req.StartTime.Format("15:04"), req.EndTime.Format("15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что вызывающий - верифицированный врач
	doctor, err := uc.userRepo.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("SetAvailability: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("SetAvailability: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	var result *domain.Availability

	// 3. Удаление старых окон и создание нового - одна единица работы
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		deleted, err := uc.availabilityRepo.DeleteUnreferenced(txCtx, doctor.ID)
		if err != nil {
			uc.logger.Error("SetAvailability: failed to delete prior availability: %v", err)
			return fmt.Errorf("%w: failed to delete prior availability: %v", ErrInternal, err)
		}
		if deleted > 0 {
			uc.logger.Info("SetAvailability: deleted %d unreferenced availability rows for doctor=%d",
				deleted, doctor.ID)
		}

		created, err := uc.availabilityRepo.Create(txCtx, &domain.Availability{
			DoctorID:  doctor.ID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Status:    domain.AvailabilityAvailable,
		})
		if err != nil {
			uc.logger.Error("SetAvailability: failed to create availability: %v", err)
			return fmt.Errorf("%w: failed to create availability: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("SetAvailability: availability id=%d created for doctor=%d", result.ID, doctor.ID)
	return fromDomain(result), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start time and end time must be valid timestamps", ErrInvalidInput)
	}

	if !req.StartTime.Before(req.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	return nil
}
