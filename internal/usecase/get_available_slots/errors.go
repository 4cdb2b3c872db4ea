package get_available_slots

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден или не верифицирован
	ErrDoctorNotFound = errors.New("get_available_slots: doctor not found or not verified")

	// ErrNoAvailability возвращается, когда врач не задал окно доступности
	ErrNoAvailability = errors.New("get_available_slots: no availability set by doctor")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
