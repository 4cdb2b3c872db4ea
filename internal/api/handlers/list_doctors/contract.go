package list_doctors

import (
	"context"

	"github.com/telemedika/appointment-service/internal/service/doctors/models"
)

type DoctorService interface {
	ListBySpecialty(ctx context.Context, specialty string) (*models.DoctorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
