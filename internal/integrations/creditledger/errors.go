package creditledger

import "errors"

var (
	// ErrDeductionFailed возвращается, когда леджер отклонил списание
	// (в том числе из-за недостатка кредитов на момент транзакции)
	ErrDeductionFailed = errors.New("creditledger client: deduction failed")

	// ErrRefundFailed возвращается, когда леджер отклонил возврат кредитов
	ErrRefundFailed = errors.New("creditledger client: refund failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("creditledger client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе леджера
	ErrInvalidResponse = errors.New("creditledger client: invalid response")
)
