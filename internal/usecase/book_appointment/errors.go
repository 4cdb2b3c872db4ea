package book_appointment

import "errors"

var (
	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("book_appointment: patient not found")

	// ErrDoctorNotFound возвращается, когда врач не найден или не верифицирован
	ErrDoctorNotFound = errors.New("book_appointment: doctor not found or not verified")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInsufficientCredits возвращается, когда баланса пациента
	// не хватает на стоимость приема
	ErrInsufficientCredits = errors.New("book_appointment: insufficient credits to book an appointment")

	// ErrSlotConflict возвращается, когда запрошенный интервал пересекается
	// с существующим активным приемом врача
	ErrSlotConflict = errors.New("book_appointment: this time slot is already booked")

	// ErrLedgerFailure возвращается, когда кредитный леджер отклонил списание
	ErrLedgerFailure = errors.New("book_appointment: failed to deduct credits")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
