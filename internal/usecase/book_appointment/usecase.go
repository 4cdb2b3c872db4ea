package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/telemedika/appointment-service/internal/domain"
	appointmentRepo "github.com/telemedika/appointment-service/internal/infra/storage/appointment"
	userRepo "github.com/telemedika/appointment-service/internal/infra/storage/user"
)

// refundRetries количество попыток компенсирующего возврата кредитов
const refundRetries = 3

// UseCase use case для создания приема
type UseCase struct {
	userRepo        UserRepository
	appointmentRepo AppointmentRepository
	ledger          CreditLedger
	video           VideoService
	cache           SlotCache
	events          EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	appointmentRepo AppointmentRepository,
	ledger CreditLedger,
	video VideoService,
	cache SlotCache,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		ledger:          ledger,
		video:           video,
		cache:           cache,
		events:          events,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания приема.
//
// Проверка пересечений, списание кредитов и вставка приема выполняются
// внутри сериализуемой транзакции с блокировкой строк врача: из двух
// конкурентных бронирований пересекающихся интервалов ровно одно получает
// ErrSlotConflict. Если вставка не удалась после успешного списания,
// выполняется компенсирующий возврат кредитов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: patient=%d, doctor=%d, start=%s, end=%s",
		req.PatientID, req.DoctorID,
		req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Проверяем пациента. Порядок проверок фиксирован: "пациент не найден"
	// имеет приоритет над ошибками валидации полей
	patient, err := uc.userRepo.GetPatient(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("BookAppointment: patient id=%d not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("BookAppointment: failed to get patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем, что врач существует и верифицирован
	doctor, err := uc.userRepo.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("BookAppointment: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("BookAppointment: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 4. Проверяем баланс кредитов
	if !patient.HasCreditsFor(domain.AppointmentCostCredits) {
		uc.logger.Warn("BookAppointment: insufficient credits: patient=%d, credits=%d, cost=%d",
			patient.ID, patient.Credits, domain.AppointmentCostCredits)
		return nil, ErrInsufficientCredits
	}

	var result *domain.Appointment

	// debited переживает повторы сериализуемой транзакции: леджер внешний,
	// его списание не откатывается вместе с нашей транзакцией
	debited := false

	// 5. Проверка пересечений, списание и вставка - одна единица работы
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Перечитываем активные приемы врача по живым данным (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetScheduledByDoctor(txCtx, doctor.ID, req.EndTime)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.2. Повторная проверка пересечений - результат листинга слотов
		// к этому моменту мог устареть
		if conflict := findOverlap(req, appointments); conflict != nil {
			uc.logger.Warn("BookAppointment: slot conflict with appointment id=%d", conflict.ID)
			return ErrSlotConflict
		}

		// 5.3. Списываем кредиты через внешний леджер
		if !debited {
			if err := uc.ledger.DeductForAppointment(txCtx, patient.ID, doctor.ID); err != nil {
				uc.logger.Warn("BookAppointment: ledger rejected deduction: %v", err)
				return fmt.Errorf("%w: %v", ErrLedgerFailure, err)
			}
			debited = true
		}

		// 5.4. Создаем прием
		appt := &domain.Appointment{
			PatientID:          patient.ID,
			DoctorID:           doctor.ID,
			StartTime:          req.StartTime,
			EndTime:            req.EndTime,
			Status:             domain.StatusScheduled,
			PatientDescription: req.Description,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("BookAppointment: slot taken at insert: doctor=%d", doctor.ID)
				return ErrSlotConflict
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Кредиты списаны, но прием не создан - возвращаем списание
		if debited {
			uc.compensateDeduction(ctx, patient.ID, doctor.ID)
		}
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	// 6. Сбрасываем кэш слотов врача и публикуем событие
	uc.cache.Invalidate(ctx, doctor.ID)
	uc.events.PublishBooked(ctx, result)

	// 7. Best-effort провижининг видеосессии: прием остается рабочим и без неё
	uc.attachVideoSession(ctx, result)

	return fromDomain(result), nil
}

// compensateDeduction возвращает списанные кредиты с повторами.
// Финальная неудача логируется с полными идентификаторами для ручной сверки
func (uc *UseCase) compensateDeduction(ctx context.Context, patientID, doctorID int64) {
	var err error
	for attempt := 1; attempt <= refundRetries; attempt++ {
		err = uc.ledger.RefundForAppointment(ctx, patientID, doctorID)
		if err == nil {
			uc.logger.Info("BookAppointment: compensating refund succeeded: patient=%d, doctor=%d",
				patientID, doctorID)
			return
		}
		uc.logger.Warn("BookAppointment: compensating refund attempt %d/%d failed: %v",
			attempt, refundRetries, err)
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}

	uc.logger.Error("BookAppointment: compensating refund exhausted retries, manual reconciliation required: patient=%d, doctor=%d, cost=%d, error=%v",
		patientID, doctorID, domain.AppointmentCostCredits, err)
}

// attachVideoSession создает видеосессию и привязывает её к приему
func (uc *UseCase) attachVideoSession(ctx context.Context, appt *domain.Appointment) {
	sessionID, err := uc.video.CreateSession(ctx)
	if err != nil {
		uc.logger.Warn("BookAppointment: video session provisioning failed for appointment id=%d: %v",
			appt.ID, err)
		return
	}

	if err := uc.appointmentRepo.SetVideoSession(ctx, appt.ID, sessionID); err != nil {
		uc.logger.Error("BookAppointment: failed to attach video session to appointment id=%d: %v",
			appt.ID, err)
		return
	}

	appt.VideoSessionID = &sessionID
	uc.logger.Info("BookAppointment: video session attached to appointment id=%d", appt.ID)
}
