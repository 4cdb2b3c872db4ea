package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/telemedika/appointment-service/internal/domain"
	"github.com/telemedika/appointment-service/pkg/dbmetrics"
	"github.com/telemedika/appointment-service/pkg/psqlbuilder"
)

// Коды ошибок postgres: нарушение exclusion constraint и unique constraint
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

var appointmentColumns = []string{
	"id",
	"patient_id",
	"doctor_id",
	"start_time",
	"end_time",
	"status",
	"patient_description",
	"notes",
	"video_session_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с приемами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приемов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый прием.
// Если в контексте передана активная транзакция, использует её.
// Нарушение exclusion constraint по (doctor_id, tstzrange) транслируется
// в ErrSlotTaken - это последний рубеж защиты от двойного бронирования
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"patient_id",
			"doctor_id",
			"start_time",
			"end_time",
			"status",
			"patient_description",
			"notes",
			"video_session_id",
		).
		Values(
			appt.PatientID,
			appt.DoctorID,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
			appt.PatientDescription,
			appt.Notes,
			appt.VideoSessionID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isConflictViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает прием по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appt, err := scanAppointmentRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetScheduledByDoctor получает приемы врача со статусом SCHEDULED,
// начинающиеся не позже until, по возрастанию времени начала.
//
// Внутри транзакции добавляет FOR UPDATE: проверка пересечений и вставка
// нового приема должны быть сериализованы по врачу
func (r *Repository) GetScheduledByDoctor(ctx context.Context, doctorID int64, until time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"doctor_id": doctorID,
			"status":    domain.StatusScheduled,
		}).
		Where(squirrel.LtOrEq{"start_time": until}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduledByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduledByDoctor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByUser получает все приемы пользователя - как пациента или как врача -
// по убыванию времени начала
func (r *Repository) GetByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Or{
			squirrel.Eq{"patient_id": userID},
			squirrel.Eq{"doctor_id": userID},
		}).
		OrderBy("start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus переводит прием в новый статус
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	return r.update(ctx, "UpdateStatus", psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// UpdateNotes обновляет заметки врача (last-write-wins)
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes string) error {
	return r.update(ctx, "UpdateNotes", psqlbuilder.Update("appointments").
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// SetVideoSession привязывает ID видеосессии к приему
func (r *Repository) SetVideoSession(ctx context.Context, id int64, sessionID string) error {
	return r.update(ctx, "SetVideoSession", psqlbuilder.Update("appointments").
		Set("video_session_id", sessionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

func (r *Repository) update(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func isConflictViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pgExclusionViolation || code == pgUniqueViolation
	}
	return false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointmentRow(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.PatientDescription,
		&appt.Notes,
		&appt.VideoSessionID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
