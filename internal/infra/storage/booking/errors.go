package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDateAlreadyBooked возвращается, когда хотя бы одна из дат слота уже
	// занята активным бронированием (нарушение частичного уникального индекса)
	ErrDateAlreadyBooked = errors.New("booking.repository: date already booked")

	// ErrDuplicateIdempotencyKey возвращается при повторной вставке с тем же
	// (owner_id, idempotency_key): гонка двух ретраев одного запроса
	ErrDuplicateIdempotencyKey = errors.New("booking.repository: duplicate idempotency key")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status")

	// ErrAlreadyModerated возвращается, когда смена статуса не нашла
	// pending-строку: конкурентная модерация успела раньше
	ErrAlreadyModerated = errors.New("booking.repository: booking already moderated")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
