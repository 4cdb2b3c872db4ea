package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда прием не найден
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidState возвращается при недопустимом переходе жизненного цикла
	ErrInvalidState = errors.New("appointment is not in a valid state for this operation")

	// ErrTooEarly возвращается при попытке завершить прием до его окончания
	ErrTooEarly = errors.New("appointment cannot be completed before its end time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
