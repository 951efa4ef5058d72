package assetstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StoredAsset ответ хранилища на загрузку файла
type StoredAsset struct {
	Ref string `json:"ref"`
	URL string `json:"url,omitempty"`
}

// Client клиент для работы с AssetStore (хранилище загруженных рекламных баннеров).
// Загрузка синхронна и атомарна: либо файл сохранен и возвращен ref, либо ошибка.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AssetStore
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

// Store загружает файл и возвращает постоянную ссылку (assetRef)
func (c *Client) Store(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create form file: %v", ErrInternal, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("%w: failed to read asset content: %v", ErrInternal, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: failed to finalize multipart body: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/assets", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusRequestEntityTooLarge:
		return "", ErrAssetTooLarge
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}

	var stored StoredAsset
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if stored.Ref == "" {
		return "", fmt.Errorf("%w: empty asset ref", ErrInvalidResponse)
	}

	c.log.Info("Asset stored: filename=%s, ref=%s", filename, stored.Ref)
	return stored.Ref, nil
}
