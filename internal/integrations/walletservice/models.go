package walletservice

// Balance модель баланса кошелька из WalletService.
// Сумма в минимальных единицах валюты.
type Balance struct {
	OwnerID int64 `json:"owner_id"`
	Balance int64 `json:"balance"`
}

// DebitRequest запрос на списание средств.
// Reference служит идемпотентным ключом списания на стороне леджера: повторное
// списание с тем же reference не выполняется дважды.
type DebitRequest struct {
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

// ErrorResponse модель ошибки от WalletService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
