package videoservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("videoservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе видеосервиса
	ErrInvalidResponse = errors.New("videoservice client: invalid response")
)
