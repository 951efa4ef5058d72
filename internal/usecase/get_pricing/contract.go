package get_pricing

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
)

// PriceRateRepository интерфейс репозитория тарифов
type PriceRateRepository interface {
	ListRatesForRange(ctx context.Context, key domain.SlotKey, from, to time.Time) ([]*domain.PriceRate, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListBookedDates(ctx context.Context, key domain.SlotKey, from, to time.Time) ([]time.Time, error)
}

// PricingService интерфейс сервиса вычисления множителя
type PricingService interface {
	ResolveMultiplier(ctx context.Context, level domain.OfficeLevel, scopeID int64) (domain.Multiplier, []domain.HierarchyLevel, error)
}

// PricingCache интерфейс кэша календаря цен (best-effort, может быть nil)
type PricingCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
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
