package get_availability

import (
	"context"

	"github.com/telemedika/appointment-service/internal/service/doctors/models"
)

type DoctorService interface {
	GetAvailability(ctx context.Context, doctorID int64) (*models.AvailabilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
