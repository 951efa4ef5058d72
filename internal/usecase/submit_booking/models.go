package submit_booking

import (
	"io"
	"time"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
)

// Asset загружаемый рекламный баннер
type Asset struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Request модель запроса на бронирование рекламного слота
type Request struct {
	OwnerID        int64          // Владелец (франчайзи или медиа-партнер)
	SlotKey        domain.SlotKey // Ключ рекламного слота
	ScopeID        int64          // Организационная единица для множителя (для branch игнорируется)
	Dates          []time.Time    // Выбранные календарные даты (без времени)
	Asset          *Asset         // Баннер (обязателен)
	LinkURL        *string        // Ссылка перехода (опционально)
	IdempotencyKey string         // Клиентский ключ идемпотентности
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64          // ID бронирования
	SlotKey       domain.SlotKey // Ключ слота
	OwnerID       int64          // Владелец
	Dates         []time.Time    // Забронированные даты
	AssetRef      string         // Ссылка на сохраненный баннер
	LinkURL       *string        // Ссылка перехода
	BasePrice     int64          // Базовый тариф на первую дату
	Multiplier    domain.Multiplier
	AmountCharged int64  // Итоговая списанная сумма
	Status        string // Статус модерации (pending при создании)

	// AlreadyExisted = true, если запрос оказался повтором (idempotency key
	// уже был использован) и вернулось ранее созданное бронирование
	AlreadyExisted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func responseFromDomain(b *domain.Booking, alreadyExisted bool) *Response {
	return &Response{
		ID:             b.ID,
		SlotKey:        b.SlotKey,
		OwnerID:        b.OwnerID,
		Dates:          b.Dates,
		AssetRef:       b.AssetRef,
		LinkURL:        b.LinkURL,
		BasePrice:      b.BasePrice,
		Multiplier:     b.Multiplier,
		AmountCharged:  b.AmountCharged,
		Status:         string(b.Status),
		AlreadyExisted: alreadyExisted,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
