package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/telemedika/appointment-service/internal/domain"
	"github.com/telemedika/appointment-service/pkg/dbmetrics"
	"github.com/telemedika/appointment-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var availabilityColumns = []string{
	"id",
	"doctor_id",
	"start_time",
	"end_time",
	"status",
	"created_at",
}

// Repository репозиторий окон доступности врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно доступности
func (r *Repository) Create(ctx context.Context, av *domain.Availability) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availabilities").
		Columns("doctor_id", "start_time", "end_time", "status").
		Values(av.DoctorID, av.StartTime, av.EndTime, av.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&av.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	av.CreatedAt = createdAt.Time
	return av, nil
}

// GetCurrent получает авторитетное окно доступности врача:
// самую свежую запись со статусом AVAILABLE
func (r *Repository) GetCurrent(ctx context.Context, doctorID int64) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(availabilityColumns...).
		From("availabilities").
		Where(squirrel.Eq{
			"doctor_id": doctorID,
			"status":    domain.AvailabilityAvailable,
		}).
		OrderBy("created_at DESC, id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrent - build select query: %v", ErrBuildQuery, err)
	}

	var av domain.Availability
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&av.ID,
		&av.DoctorID,
		&av.StartTime,
		&av.EndTime,
		&av.Status,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrent - scan availability: %v", ErrScanRow, err)
	}

	av.CreatedAt = createdAt.Time
	return &av, nil
}

// GetByDoctor получает все окна доступности врача по возрастанию времени начала
func (r *Repository) GetByDoctor(ctx context.Context, doctorID int64) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(availabilityColumns...).
		From("availabilities").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Availability, 0)
	for rows.Next() {
		var av domain.Availability
		var createdAt sql.NullTime

		err := rows.Scan(
			&av.ID,
			&av.DoctorID,
			&av.StartTime,
			&av.EndTime,
			&av.Status,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDoctor - scan row: %v", ErrScanRow, err)
		}

		av.CreatedAt = createdAt.Time
		result = append(result, &av)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDoctor - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// DeleteUnreferenced удаляет окна доступности врача, на точное время начала
// которых не ссылается ни одна запись о приеме. Окна, "занятые" существующими
// приемами, сохраняются, чтобы не осиротить историю
func (r *Repository) DeleteUnreferenced(ctx context.Context, doctorID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availabilities").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.Expr(`NOT EXISTS (
			SELECT 1 FROM appointments a
			WHERE a.doctor_id = availabilities.doctor_id
			  AND a.start_time = availabilities.start_time
		)`)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnreferenced - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnreferenced - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnreferenced - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
