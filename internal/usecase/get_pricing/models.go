package get_pricing

import (
	"time"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
)

// Request модель запроса календаря цен
type Request struct {
	SlotKey domain.SlotKey // Ключ рекламного слота
	ScopeID int64          // Организационная единица владельца (страна или штат; для branch игнорируется)
	From    time.Time      // Начало запрошенного диапазона (опционально, zero = от начала окна)
	To      time.Time      // Конец запрошенного диапазона (опционально, zero = до конца окна)
}

// Response модель ответа с календарем цен.
// Сериализуется в JSON как есть (кэшируется в Redis).
type Response struct {
	SlotKey       domain.SlotKey `json:"slotKey"`
	WindowStart   time.Time      `json:"windowStart"`
	WindowEnd     time.Time      `json:"windowEnd"`
	MultiplierNum int64          `json:"multiplierNum"`
	MultiplierDen int64          `json:"multiplierDen"`
	Days          []Day          `json:"days"`
}

// Day один день календаря цен
type Day struct {
	Date       time.Time `json:"date"`
	Configured bool      `json:"configured"`
	BasePrice  int64     `json:"basePrice,omitempty"`
	Price      int64     `json:"price,omitempty"`
	IsBooked   bool      `json:"isBooked"`
	Selectable bool      `json:"selectable"`
}
