package submit_booking

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByIdempotencyKey(ctx context.Context, ownerID int64, key string) (*domain.Booking, error)
	ListBookedDates(ctx context.Context, key domain.SlotKey, from, to time.Time) ([]time.Time, error)
}

// PriceRateRepository интерфейс репозитория тарифов
type PriceRateRepository interface {
	GetRateForDate(ctx context.Context, key domain.SlotKey, date time.Time) (*domain.PriceRate, error)
}

// PricingService интерфейс сервиса вычисления множителя
type PricingService interface {
	ResolveMultiplier(ctx context.Context, level domain.OfficeLevel, scopeID int64) (domain.Multiplier, []domain.HierarchyLevel, error)
}

// WalletServiceClient интерфейс клиента для WalletService
type WalletServiceClient interface {
	GetBalance(ctx context.Context, ownerID int64) (int64, error)
	Debit(ctx context.Context, ownerID int64, amount int64, reference string) error
	Reverse(ctx context.Context, reference string) error
}

// AssetStoreClient интерфейс клиента для AssetStore
type AssetStoreClient interface {
	Store(ctx context.Context, filename string, content io.Reader) (string, error)
}

// PricingCacheInvalidator интерфейс инвалидации кэша календаря (может быть nil)
type PricingCacheInvalidator interface {
	InvalidateSlot(ctx context.Context, slotKey string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
