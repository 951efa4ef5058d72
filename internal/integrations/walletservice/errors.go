package walletservice

import "errors"

var (
	// ErrInsufficientFunds возвращается, когда баланса кошелька не хватает на списание
	ErrInsufficientFunds = errors.New("walletservice client: insufficient funds")

	// ErrWalletNotFound возвращается, когда кошелек владельца не найден
	ErrWalletNotFound = errors.New("walletservice client: wallet not found")

	// ErrDebitNotFound возвращается при попытке отменить несуществующее списание
	ErrDebitNotFound = errors.New("walletservice client: debit not found")

	// ErrUnavailable возвращается, когда сервис кошельков недоступен (сеть, timeout, 5xx).
	// Вызывающий может повторить запрос с тем же idempotency key.
	ErrUnavailable = errors.New("walletservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("walletservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("walletservice client: internal error")
)
