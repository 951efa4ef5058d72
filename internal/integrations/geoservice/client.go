package geoservice

import (
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

// Client клиент для работы с GeoService (организационная иерархия:
// страна → штаты → округа). Счетчики подчиненных единиц питают
// вычисление множителя цены.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента GeoService
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

// GetScope получает организационную единицу по ID
func (c *Client) GetScope(ctx context.Context, scopeID int64) (*Scope, error) {
	url := fmt.Sprintf("%s/internal/scopes/%d", c.baseURL, scopeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrScopeNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var scope Scope
	if err := json.NewDecoder(resp.Body).Decode(&scope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &scope, nil
}

// CountSubordinates подсчитывает подчиненные единицы уровня level под scope.
// Для страны level=state дает число штатов, level=district дает суммарное число
// округов под всеми штатами страны.
func (c *Client) CountSubordinates(ctx context.Context, scopeID int64, level string) (int64, error) {
	url := fmt.Sprintf("%s/internal/scopes/%d/subordinates/count?level=%s", c.baseURL, scopeID, level)

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
		return 0, ErrScopeNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var count CountResponse
	if err := json.NewDecoder(resp.Body).Decode(&count); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if count.Count < 0 {
		return 0, fmt.Errorf("%w: negative subordinate count %d", ErrInvalidResponse, count.Count)
	}

	return count.Count, nil
}
