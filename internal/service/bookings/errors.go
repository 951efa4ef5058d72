package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrAccessDenied возвращается, когда пользователь пытается получить чужое бронирование
	ErrAccessDenied = errors.New("bookings.service: access denied")

	// ErrCannotModerate возвращается, когда бронирование уже прошло модерацию
	ErrCannotModerate = errors.New("bookings.service: booking cannot be moderated")

	// ErrWalletUnavailable возвращается, когда не удалось отменить списание при отклонении
	ErrWalletUnavailable = errors.New("bookings.service: wallet service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
