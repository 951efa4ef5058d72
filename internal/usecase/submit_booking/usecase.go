package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AdsBookingService/internal/infra/storage/booking"
	priceRateRepo "github.com/m04kA/SMC-AdsBookingService/internal/infra/storage/pricerate"
	assetClient "github.com/m04kA/SMC-AdsBookingService/internal/integrations/assetstore"
	walletClient "github.com/m04kA/SMC-AdsBookingService/internal/integrations/walletservice"
	pricingSvc "github.com/m04kA/SMC-AdsBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-AdsBookingService/pkg/money"
)

// UseCase use case бронирования рекламного слота.
//
// Транзакция проходит фазы Draft → Validating → Reserving → Committed|Failed:
// валидация входа и окна, прайсинг, проверка баланса, загрузка баннера, затем
// сериализуемая БД-транзакция (перепроверка занятости дат под блокировкой,
// вставка брони, списание с кошелька). Любая ошибка до commit оставляет
// систему без побочных эффектов; списание при упавшем commit компенсируется
// обратной операцией леджера.
type UseCase struct {
	bookingRepo  BookingRepository
	rateRepo     PriceRateRepository
	pricingSvc   PricingService
	wallet       WalletServiceClient
	assetStore   AssetStoreClient
	pricingCache PricingCacheInvalidator // nil, когда кэш отключен
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	// reserveTimeout ограничивает фазу Reserving (БД + кошелек)
	reserveTimeout time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	rateRepo PriceRateRepository,
	pricingService PricingService,
	wallet WalletServiceClient,
	assetStore AssetStoreClient,
	pricingCache PricingCacheInvalidator,
	txManager TransactionManager,
	reserveTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepository,
		rateRepo:       rateRepo,
		pricingSvc:     pricingService,
		wallet:         wallet,
		assetStore:     assetStore,
		pricingCache:   pricingCache,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		reserveTimeout: reserveTimeout,
	}
}

// Execute выполняет use case бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: owner=%d, slot=%s, dates=%d, key=%s",
		req.OwnerID, req.SlotKey, len(req.Dates), req.IdempotencyKey)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	dates := normalizeDates(req.Dates)

	// 2. Окно бронирования от серверных часов
	now := uc.timeProvider.Now()
	window := domain.NewBookingWindow(now)
	if err := validateWindow(dates, window); err != nil {
		uc.logger.Warn("SubmitBooking: window validation failed: %v", err)
		return nil, err
	}

	// 3. Идемпотентность: повтор с тем же ключом возвращает прежнюю бронь
	// без каких-либо новых эффектов
	if existing, err := uc.bookingRepo.GetByIdempotencyKey(ctx, req.OwnerID, req.IdempotencyKey); err == nil {
		uc.logger.Info("SubmitBooking: idempotent replay, returning booking id=%d", existing.ID)
		return responseFromDomain(existing, true), nil
	} else if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("SubmitBooking: idempotency lookup failed: %v", err)
		return nil, fmt.Errorf("%w: idempotency lookup: %v", ErrInternal, err)
	}

	// 4. Множитель иерархии
	multiplier, _, err := uc.pricingSvc.ResolveMultiplier(ctx, req.SlotKey.OfficeLevel, req.ScopeID)
	if err != nil {
		return nil, uc.mapPricingError(err)
	}
	if multiplier.Num <= 0 {
		uc.logger.Warn("SubmitBooking: zero multiplier for slot=%s, scope=%d", req.SlotKey, req.ScopeID)
		return nil, ErrSlotNotOrderable
	}

	// 5. Прайсинг выбранных дат
	basePrice, total, err := uc.priceDates(ctx, req.SlotKey, dates, multiplier)
	if err != nil {
		return nil, err
	}

	// 6. Предварительная проверка баланса (авторитетное списание идет в фазе Reserving)
	balance, err := uc.wallet.GetBalance(ctx, req.OwnerID)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to get balance for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: get balance: %v", ErrWalletUnavailable, err)
	}
	if balance < total {
		uc.logger.Warn("SubmitBooking: insufficient funds for owner=%d: balance=%d, total=%d",
			req.OwnerID, balance, total)
		return nil, ErrInsufficientFunds
	}

	// 7. Сохраняем баннер. Осиротевший файл при падении дальше приемлем,
	// осиротевшее списание нет, поэтому файл идет до денег.
	assetRef, err := uc.assetStore.Store(ctx, req.Asset.Filename, req.Asset.Content)
	if err != nil {
		if errors.Is(err, assetClient.ErrAssetTooLarge) {
			return nil, ErrAssetTooLarge
		}
		uc.logger.Error("SubmitBooking: asset store failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrAssetStoreUnavailable, err)
	}

	booking := &domain.Booking{
		SlotKey:        req.SlotKey,
		Dates:          dates,
		OwnerID:        req.OwnerID,
		AssetRef:       assetRef,
		LinkURL:        req.LinkURL,
		BasePrice:      basePrice,
		Multiplier:     multiplier,
		AmountCharged:  total,
		Status:         domain.StatusPending,
		IdempotencyKey: req.IdempotencyKey,
		LedgerRef:      uuid.NewString(),
	}

	// 8. Фаза Reserving: сериализуемая транзакция с ограничением по времени
	result, replayed, err := uc.reserve(ctx, booking, window)
	if err != nil {
		return nil, err
	}
	if replayed {
		// Гонка ретраев разрешилась в пользу конкурента: бронь уже создана,
		// календарь не менялся, отвечаем как на обычный повтор
		uc.logger.Info("SubmitBooking: idempotent replay resolved in reserve, booking id=%d", result.ID)
		return responseFromDomain(result, true), nil
	}

	// 9. Календарь слота изменился, сбрасываем кэш прайсинга
	if uc.pricingCache != nil {
		uc.pricingCache.InvalidateSlot(ctx, req.SlotKey.String())
	}

	uc.logger.Info("SubmitBooking: committed booking id=%d, owner=%d, amount=%d",
		result.ID, result.OwnerID, result.AmountCharged)

	return responseFromDomain(result, false), nil
}

// priceDates вычисляет базовый тариф первой даты и итоговую сумму по всем датам
func (uc *UseCase) priceDates(ctx context.Context, key domain.SlotKey, dates []time.Time, multiplier domain.Multiplier) (basePrice int64, total int64, err error) {
	prices := make([]int64, 0, len(dates))
	for i, d := range dates {
		rate, err := uc.rateRepo.GetRateForDate(ctx, key, d)
		if err != nil {
			if errors.Is(err, priceRateRepo.ErrRateNotFound) {
				uc.logger.Warn("SubmitBooking: no rate for slot=%s on %s", key, d.Format(domain.DateFormat))
				return 0, 0, fmt.Errorf("%w: %s", ErrNotConfigured, d.Format(domain.DateFormat))
			}
			uc.logger.Error("SubmitBooking: failed to get rate: %v", err)
			return 0, 0, fmt.Errorf("%w: get rate: %v", ErrInternal, err)
		}
		if i == 0 {
			basePrice = rate.BasePrice
		}
		prices = append(prices, multiplier.Apply(rate.BasePrice))
	}

	return basePrice, money.Sum(prices), nil
}

// reserve выполняет критическую секцию: под блокировкой перепроверяет
// занятость дат, создает бронь и списывает средства. Коммит с уже
// выполненным списанием компенсируется wallet.Reverse. replayed = true,
// когда гонка по ключу идемпотентности вернула ранее созданную бронь.
func (uc *UseCase) reserve(ctx context.Context, booking *domain.Booking, window domain.BookingWindow) (result *domain.Booking, replayed bool, err error) {
	reserveCtx, cancel := context.WithTimeout(ctx, uc.reserveTimeout)
	defer cancel()

	debitIssued := false

	err = uc.txManager.DoSerializable(reserveCtx, func(txCtx context.Context) error {
		// Перепроверка занятости под FOR UPDATE: клиентский календарь
		// лишь подсказка, истина устанавливается здесь
		booked, err := uc.bookingRepo.ListBookedDates(txCtx, booking.SlotKey, window.Start, window.End)
		if err != nil {
			return fmt.Errorf("%w: list booked dates: %v", ErrInternal, err)
		}

		if conflicts := intersectDates(booking.Dates, booked); len(conflicts) > 0 {
			uc.logger.Warn("SubmitBooking: lost race for slot=%s, conflicts=%d", booking.SlotKey, len(conflicts))
			return &DateConflictError{Dates: conflicts}
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrDateAlreadyBooked):
				// Страховка уникального индекса: гонка, не пойманная проверкой выше
				return &DateConflictError{Dates: booking.Dates}
			case errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey):
				return bookingRepo.ErrDuplicateIdempotencyKey
			default:
				return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
			}
		}

		// Списание идет последним шагом: его ошибка откатывает вставленные строки
		if err := uc.wallet.Debit(txCtx, created.OwnerID, created.AmountCharged, created.LedgerRef); err != nil {
			if errors.Is(err, walletClient.ErrInsufficientFunds) {
				return ErrInsufficientFunds
			}
			return fmt.Errorf("%w: debit: %v", ErrWalletUnavailable, err)
		}
		debitIssued = true

		result = created
		return nil
	})

	if err != nil {
		// Деньги списаны, но commit не прошел: возвращаем списание.
		// Если и компенсация не прошла, леджер сам дедуплицирует по ledger_ref
		// при повторе клиента; инцидент логируется для ручного разбора.
		if debitIssued {
			uc.compensateDebit(booking.LedgerRef)
		}

		if errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey) {
			// Гонка двух ретраев одного запроса: бронь уже создана конкурентом
			existing, lookupErr := uc.bookingRepo.GetByIdempotencyKey(ctx, booking.OwnerID, booking.IdempotencyKey)
			if lookupErr != nil {
				return nil, false, fmt.Errorf("%w: duplicate key lookup: %v", ErrInternal, lookupErr)
			}
			return existing, true, nil
		}

		if errors.Is(err, context.DeadlineExceeded) {
			uc.logger.Error("SubmitBooking: reserving phase timed out for slot=%s", booking.SlotKey)
			return nil, false, ErrTimeout
		}

		return nil, false, err
	}

	return result, false, nil
}

// compensateDebit возвращает списание после несостоявшегося commit
func (uc *UseCase) compensateDebit(ledgerRef string) {
	reverseCtx, cancel := context.WithTimeout(context.Background(), uc.reserveTimeout)
	defer cancel()

	if err := uc.wallet.Reverse(reverseCtx, ledgerRef); err != nil {
		uc.logger.Error("SubmitBooking: COMPENSATION FAILED, orphaned debit ledger_ref=%s: %v", ledgerRef, err)
		return
	}
	uc.logger.Warn("SubmitBooking: debit reversed after failed commit, ledger_ref=%s", ledgerRef)
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
