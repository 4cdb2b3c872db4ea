package creditledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с внешним кредитным леджером.
// Леджер владеет балансами и политикой распределения комиссии;
// планировщик только вызывает его и уважает вердикт
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента леджера
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// DeductForAppointment атомарно переводит фиксированную стоимость приема
// с баланса пациента на баланс врача
func (c *Client) DeductForAppointment(ctx context.Context, patientID, doctorID int64) error {
	resp, err := c.post(ctx, "/internal/credits/deduct", DeductRequest{
		PatientID: patientID,
		DoctorID:  doctorID,
	})
	if err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("%w: %s", ErrDeductionFailed, resp.Error)
	}

	c.log.Info("Credits deducted: patient_id=%d, doctor_id=%d", patientID, doctorID)
	return nil
}

// RefundForAppointment возвращает списанные кредиты.
// Используется как компенсирующее действие, когда вставка приема
// не удалась после успешного списания
func (c *Client) RefundForAppointment(ctx context.Context, patientID, doctorID int64) error {
	resp, err := c.post(ctx, "/internal/credits/refund", RefundRequest{
		PatientID: patientID,
		DoctorID:  doctorID,
	})
	if err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("%w: %s", ErrRefundFailed, resp.Error)
	}

	c.log.Info("Credits refunded: patient_id=%d, doctor_id=%d", patientID, doctorID)
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (*LedgerResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var ledgerResp LedgerResponse
	if err := json.NewDecoder(resp.Body).Decode(&ledgerResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &ledgerResp, nil
}
