package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/telemedika/appointment-service/internal/domain"
	availabilityRepo "github.com/telemedika/appointment-service/internal/infra/storage/availability"
	userRepo "github.com/telemedika/appointment-service/internal/infra/storage/user"
)

// UseCase use case для получения доступных слотов на горизонте в 4 дня
type UseCase struct {
	userRepo         UserRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	cache            SlotCache
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	cache SlotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:         userRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		cache:            cache,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Текущее время фиксируется один раз на запрос: все проверки "в прошлом"
// по всем четырем дням используют один и тот же снапшот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%d", req.DoctorID)

	if req.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	// 1. Проверяем, что врач существует и верифицирован.
	// Резолв врача идет до кэша: удаленный или разверифицированный врач
	// не должен отдавать слоты из кэша до истечения TTL
	if _, err := uc.userRepo.GetDoctor(ctx, req.DoctorID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("GetAvailableSlots: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 2. Проверяем кэш
	if days, ok := uc.cache.Get(ctx, req.DoctorID); ok {
		uc.logger.Info("GetAvailableSlots: cache hit for doctor=%d", req.DoctorID)
		return &Response{Days: days}, nil
	}

	// 3. Фиксируем текущее время
	now := uc.timeProvider.Now()

	// 4. Получаем авторитетное окно доступности
	availability, err := uc.availabilityRepo.GetCurrent(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Warn("GetAvailableSlots: no availability for doctor id=%d", req.DoctorID)
			return nil, ErrNoAvailability
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability for doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 5. Получаем активные приемы врача на весь горизонт одним запросом
	lastDay := endOfDay(now.AddDate(0, 0, domain.HorizonDays-1))
	appointments, err := uc.appointmentRepo.GetScheduledByDoctor(ctx, req.DoctorID, lastDay)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты для каждого дня горизонта
	days := make([]domain.DaySlots, 0, domain.HorizonDays)
	for i := 0; i < domain.HorizonDays; i++ {
		day := now.AddDate(0, 0, i)
		slots := generateDaySlots(availability, day, now, appointments)

		displayDate := day.Format(domain.DayLabelFormat)
		if len(slots) > 0 {
			displayDate = slots[0].Day
		}

		days = append(days, domain.DaySlots{
			Date:        day.Format(domain.DateFormat),
			DisplayDate: displayDate,
			Slots:       slots,
		})
	}

	// 7. Кэшируем результат
	uc.cache.Set(ctx, req.DoctorID, days)

	uc.logger.Info("GetAvailableSlots: generated slots for doctor=%d, days=%d", req.DoctorID, len(days))
	return &Response{Days: days}, nil
}
