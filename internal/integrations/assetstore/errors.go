package assetstore

import "errors"

var (
	// ErrUnavailable возвращается, когда хранилище файлов недоступно (сеть, timeout, 5xx)
	ErrUnavailable = errors.New("assetstore client: service unavailable")

	// ErrAssetTooLarge возвращается, когда файл превышает лимит хранилища
	ErrAssetTooLarge = errors.New("assetstore client: asset too large")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("assetstore client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("assetstore client: internal error")
)
