package set_availability

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден или не верифицирован
	ErrDoctorNotFound = errors.New("set_availability: doctor not found or not verified")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("set_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("set_availability: internal error")
)
