package submit_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrMissingAsset возвращается, когда не загружен рекламный баннер
	ErrMissingAsset = errors.New("submit_booking: missing ad asset")

	// ErrNoDatesSelected возвращается при пустом наборе дат
	ErrNoDatesSelected = errors.New("submit_booking: no dates selected")

	// ErrOutsideWindow возвращается, когда выбранная дата вне окна бронирования
	ErrOutsideWindow = errors.New("submit_booking: date outside booking window")

	// ErrNotConfigured возвращается, когда на выбранную дату не настроен тариф.
	// День не продается; подстановка нулевой цены недопустима.
	ErrNotConfigured = errors.New("submit_booking: no rate configured for date")

	// ErrSlotNotOrderable возвращается при нулевом множителе слота
	ErrSlotNotOrderable = errors.New("submit_booking: slot is not orderable")

	// ErrScopeNotFound возвращается, когда организационная единица не найдена
	ErrScopeNotFound = errors.New("submit_booking: scope not found")

	// ErrInsufficientFunds возвращается при нехватке средств на кошельке
	ErrInsufficientFunds = errors.New("submit_booking: insufficient funds")

	// ErrDateAlreadyBooked возвращается при проигрыше гонки за даты:
	// конкурирующее бронирование заняло часть дат между рендером календаря
	// и подтверждением. Сопровождается полным откатом.
	ErrDateAlreadyBooked = errors.New("submit_booking: date already booked")

	// ErrWalletUnavailable возвращается при недоступности сервиса кошельков.
	// Транзакция завершена без побочных эффектов; повтор с тем же
	// idempotency key безопасен.
	ErrWalletUnavailable = errors.New("submit_booking: wallet service unavailable")

	// ErrAssetStoreUnavailable возвращается при недоступности хранилища файлов
	ErrAssetStoreUnavailable = errors.New("submit_booking: asset store unavailable")

	// ErrAssetTooLarge возвращается, когда баннер превышает лимит размера
	ErrAssetTooLarge = errors.New("submit_booking: asset too large")

	// ErrGeoUnavailable возвращается при недоступности гео-сервиса
	ErrGeoUnavailable = errors.New("submit_booking: geo service unavailable")

	// ErrTimeout возвращается, когда фаза Reserving не уложилась в лимит времени
	ErrTimeout = errors.New("submit_booking: reserving phase timed out")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// DateConflictError ошибка гонки за даты с перечнем конфликтующих дат,
// чтобы клиент мог перерисовать календарь и дать пользователю перевыбрать
type DateConflictError struct {
	Dates []time.Time
}

// Error возвращает текст ошибки с перечнем дат
func (e *DateConflictError) Error() string {
	if len(e.Dates) == 0 {
		return ErrDateAlreadyBooked.Error()
	}
	formatted := make([]string, len(e.Dates))
	for i, d := range e.Dates {
		formatted[i] = d.Format(domain.DateFormat)
	}
	return fmt.Sprintf("%s: %s", ErrDateAlreadyBooked.Error(), strings.Join(formatted, ", "))
}

// Unwrap позволяет errors.Is(err, ErrDateAlreadyBooked)
func (e *DateConflictError) Unwrap() error {
	return ErrDateAlreadyBooked
}
