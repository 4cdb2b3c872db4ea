package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/telemedika/appointment-service/internal/domain"
	"github.com/telemedika/appointment-service/pkg/dbmetrics"
	"github.com/telemedika/appointment-service/pkg/psqlbuilder"
)

var userColumns = []string{
	"id",
	"name",
	"email",
	"role",
	"specialty",
	"verification_status",
	"credits",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения пользователей
// Пользователи принадлежат подсистеме идентификации; ядро планирования
// читает только роль, статус верификации и баланс кредитов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetPatient получает пользователя с ролью PATIENT
func (r *Repository) GetPatient(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{
		"id":   id,
		"role": domain.RolePatient,
	})
}

// GetDoctor получает верифицированного врача по ID
func (r *Repository) GetDoctor(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{
		"id":                  id,
		"role":                domain.RoleDoctor,
		"verification_status": domain.VerificationVerified,
	})
}

// ListDoctorsBySpecialty получает верифицированных врачей по специальности,
// отсортированных по имени
func (r *Repository) ListDoctorsBySpecialty(ctx context.Context, specialty string) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{
			"role":                domain.RoleDoctor,
			"verification_status": domain.VerificationVerified,
			"specialty":           specialty,
		}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDoctorsBySpecialty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDoctorsBySpecialty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDoctorsBySpecialty - rows error: %v", ErrScanRow, err)
	}

	return users, nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.Specialty,
		&user.VerificationStatus,
		&user.Credits,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan user: %v", ErrScanRow, err)
	}

	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}

func scanUser(rows *sql.Rows) (*domain.User, error) {
	var user domain.User
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.Specialty,
		&user.VerificationStatus,
		&user.Credits,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanUser - scan row: %v", ErrScanRow, err)
	}

	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}
