package creditledger

// DeductRequest запрос на списание кредитов за прием
type DeductRequest struct {
	PatientID int64 `json:"patientId"`
	DoctorID  int64 `json:"doctorId"`
}

// RefundRequest запрос на возврат кредитов (компенсация неудавшейся брони)
type RefundRequest struct {
	PatientID int64 `json:"patientId"`
	DoctorID  int64 `json:"doctorId"`
}

// LedgerResponse ответ леджера на операцию с кредитами
type LedgerResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
