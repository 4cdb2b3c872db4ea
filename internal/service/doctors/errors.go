package doctors

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден или не верифицирован
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
