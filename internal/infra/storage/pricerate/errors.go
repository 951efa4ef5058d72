package pricerate

import "errors"

var (
	// ErrRateNotFound возвращается, когда для слота и даты не настроен базовый тариф.
	// Вызывающий обязан трактовать день как "не продается", а не как цену 0.
	ErrRateNotFound = errors.New("pricerate.repository: rate not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pricerate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pricerate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pricerate.repository: failed to scan row")
)
