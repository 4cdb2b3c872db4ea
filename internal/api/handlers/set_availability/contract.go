package set_availability

import (
	"context"

	setAvailability "github.com/telemedika/appointment-service/internal/usecase/set_availability"
)

type SetAvailabilityUseCase interface {
	Execute(ctx context.Context, req *setAvailability.Request) (*setAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
