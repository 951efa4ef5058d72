package get_pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	"github.com/m04kA/SMC-AdsBookingService/internal/infra/cache"
	pricingSvc "github.com/m04kA/SMC-AdsBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-AdsBookingService/pkg/types"
)

// UseCase use case отрисовки календаря цен слота: окно бронирования,
// цена за каждый день (базовый тариф × множитель) и занятость дат.
//
// Путь только на чтение: результат advisory, финальная истина проверяется
// в транзакции бронирования.
type UseCase struct {
	rateRepo     PriceRateRepository
	bookingRepo  BookingRepository
	pricingSvc   PricingService
	pricingCache PricingCache // nil, когда кэш отключен
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rateRepo PriceRateRepository,
	bookingRepo BookingRepository,
	pricingService PricingService,
	pricingCache PricingCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		rateRepo:     rateRepo,
		bookingRepo:  bookingRepo,
		pricingSvc:   pricingService,
		pricingCache: pricingCache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря цен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetPricing: slot=%s, scope=%d", req.SlotKey, req.ScopeID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetPricing: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	window := domain.NewBookingWindow(now)

	start, end, ok := window.Clamp(req.From, req.To)
	if !ok {
		// Запрошенный диапазон целиком вне окна: пустой календарь
		return &Response{
			SlotKey:     req.SlotKey,
			WindowStart: window.Start,
			WindowEnd:   window.End,
			Days:        []Day{},
		}, nil
	}

	// Полное окно соответствует типичному рендеру календаря, его кэшируем
	fullWindow := start.Equal(window.Start) && end.Equal(window.End)
	cacheKey := cache.Key(req.SlotKey.String(), req.ScopeID, window.Start)

	if fullWindow && uc.pricingCache != nil {
		var cached Response
		if uc.pricingCache.Get(ctx, cacheKey, &cached) {
			uc.logger.Info("GetPricing: cache hit for slot=%s", req.SlotKey)
			return &cached, nil
		}
	}

	multiplier, _, err := uc.pricingSvc.ResolveMultiplier(ctx, req.SlotKey.OfficeLevel, req.ScopeID)
	if err != nil {
		return nil, uc.mapPricingError(err)
	}
	if multiplier.Num <= 0 {
		uc.logger.Warn("GetPricing: zero multiplier for slot=%s, scope=%d", req.SlotKey, req.ScopeID)
		return nil, ErrSlotNotOrderable
	}

	rates, err := uc.rateRepo.ListRatesForRange(ctx, req.SlotKey, start, end)
	if err != nil {
		uc.logger.Error("GetPricing: failed to list rates: %v", err)
		return nil, fmt.Errorf("%w: failed to list rates: %v", ErrInternal, err)
	}

	bookedDates, err := uc.bookingRepo.ListBookedDates(ctx, req.SlotKey, start, end)
	if err != nil {
		uc.logger.Error("GetPricing: failed to list booked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to list booked dates: %v", ErrInternal, err)
	}

	resp := &Response{
		SlotKey:       req.SlotKey,
		WindowStart:   window.Start,
		WindowEnd:     window.End,
		MultiplierNum: multiplier.Num,
		MultiplierDen: multiplier.Den,
		Days:          buildDays(start, end, rates, bookedDates, multiplier),
	}

	if fullWindow && uc.pricingCache != nil {
		uc.pricingCache.Set(ctx, cacheKey, resp)
	}

	return resp, nil
}

// buildDays собирает календарь по дням: тариф, цена, занятость
func buildDays(start, end time.Time, rates []*domain.PriceRate, bookedDates []time.Time, multiplier domain.Multiplier) []Day {
	booked := make(map[string]struct{}, len(bookedDates))
	for _, d := range bookedDates {
		booked[d.Format(domain.DateFormat)] = struct{}{}
	}

	days := make([]Day, 0, 92)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := Day{Date: d}

		if rate := rateForDate(rates, d); rate != nil {
			day.Configured = true
			day.BasePrice = rate.BasePrice
			day.Price = multiplier.Apply(rate.BasePrice)
		}

		if _, ok := booked[d.Format(domain.DateFormat)]; ok {
			day.IsBooked = true
		}

		day.Selectable = day.Configured && !day.IsBooked
		days = append(days, day)
	}

	return days
}

// rateForDate выбирает действующий тариф: при пересечении диапазонов
// выигрывает более поздний effective_from (rates отсортированы ASC)
func rateForDate(rates []*domain.PriceRate, date time.Time) *domain.PriceRate {
	var match *domain.PriceRate
	for _, rate := range rates {
		if rate.Covers(date) {
			match = rate
		}
	}
	return match
}

func (uc *UseCase) mapPricingError(err error) error {
	switch {
	case errors.Is(err, pricingSvc.ErrScopeNotFound):
		return ErrScopeNotFound
	case errors.Is(err, pricingSvc.ErrGeoUnavailable):
		return fmt.Errorf("%w: %v", ErrGeoUnavailable, err)
	case errors.Is(err, pricingSvc.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if err := req.SlotKey.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.SlotKey.OfficeLevel != domain.OfficeLevelBranch && req.ScopeID <= 0 {
		return fmt.Errorf("%w: scopeID is required for level %s", ErrInvalidInput, req.SlotKey.OfficeLevel)
	}
	if !req.From.IsZero() && !req.To.IsZero() && types.DateAfter(req.From, req.To) {
		return fmt.Errorf("%w: from is after to", ErrInvalidInput)
	}
	return nil
}
