package user

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	// или не проходит фильтр по роли/статусу верификации
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
