package walletservice

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

// Client клиент для работы с WalletService (внешний леджер кошельков).
// Леджер сериализует конкурентные списания по одному владельцу на своей стороне.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента WalletService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SetTransport подменяет транспорт HTTP клиента (метрики интеграционных вызовов)
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

// GetBalance получает текущий баланс кошелька владельца
func (c *Client) GetBalance(ctx context.Context, ownerID int64) (int64, error) {
	url := fmt.Sprintf("%s/internal/wallets/%d/balance", c.baseURL, ownerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return 0, ErrWalletNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var balance Balance
	if err := json.NewDecoder(resp.Body).Decode(&balance); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return balance.Balance, nil
}

// Debit списывает сумму с кошелька владельца.
// reference служит ключом идемпотентности списания; при нехватке средств возвращает
// ErrInsufficientFunds без частичного списания.
func (c *Client) Debit(ctx context.Context, ownerID int64, amount int64, reference string) error {
	url := fmt.Sprintf("%s/internal/wallets/%d/debit", c.baseURL, ownerID)

	payload, err := json.Marshal(DebitRequest{Amount: amount, Reference: reference})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusPaymentRequired, http.StatusConflict:
		c.log.Warn("Debit rejected: owner_id=%d, amount=%d, reference=%s", ownerID, amount, reference)
		return ErrInsufficientFunds
	case http.StatusNotFound:
		return ErrWalletNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}
}

// Reverse отменяет ранее выполненное списание (компенсация при откате бронирования)
func (c *Client) Reverse(ctx context.Context, reference string) error {
	url := fmt.Sprintf("%s/internal/debits/%s/reverse", c.baseURL, reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		c.log.Info("Debit reversed: reference=%s", reference)
		return nil
	case http.StatusNotFound:
		return ErrDebitNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}
}
