package get_pricing

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_pricing: invalid input data")

	// ErrScopeNotFound возвращается, когда организационная единица не найдена
	ErrScopeNotFound = errors.New("get_pricing: scope not found")

	// ErrGeoUnavailable возвращается, когда гео-сервис недоступен
	ErrGeoUnavailable = errors.New("get_pricing: geo service unavailable")

	// ErrSlotNotOrderable возвращается, когда множитель слота равен нулю
	// (под scope нет подчиненных единиц) и слот не продается
	ErrSlotNotOrderable = errors.New("get_pricing: slot is not orderable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_pricing: internal error")
)
