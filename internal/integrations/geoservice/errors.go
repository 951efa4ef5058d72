package geoservice

import "errors"

var (
	// ErrScopeNotFound возвращается, когда организационная единица не найдена
	ErrScopeNotFound = errors.New("geoservice client: scope not found")

	// ErrUnavailable возвращается, когда гео-сервис недоступен (сеть, timeout, 5xx)
	ErrUnavailable = errors.New("geoservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("geoservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("geoservice client: internal error")
)
