package pricing

import "errors"

var (
	// ErrScopeNotFound возвращается, когда организационная единица не найдена
	ErrScopeNotFound = errors.New("pricing.service: scope not found")

	// ErrGeoUnavailable возвращается, когда гео-сервис недоступен
	ErrGeoUnavailable = errors.New("pricing.service: geo service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricing.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing.service: internal error")
)
