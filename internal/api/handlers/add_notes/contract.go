package add_notes

import "context"

type AppointmentService interface {
	AddNotes(ctx context.Context, id int64, userID int64, notes string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
