package submit_booking

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AdsBookingService/internal/infra/storage/booking"
	priceRateRepo "github.com/m04kA/SMC-AdsBookingService/internal/infra/storage/pricerate"
	walletClient "github.com/m04kA/SMC-AdsBookingService/internal/integrations/walletservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookingRepo struct {
	existing        *domain.Booking // returned by GetByIdempotencyKey
	existingOnRetry *domain.Booking // returned only by repeated lookups
	booked          []time.Time
	createErr       error

	created     *domain.Booking
	createCalls int
	idemCalls   int
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *booking
	created.ID = 1
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetByIdempotencyKey(_ context.Context, _ int64, _ string) (*domain.Booking, error) {
	f.idemCalls++
	if f.existing != nil {
		return f.existing, nil
	}
	if f.existingOnRetry != nil && f.idemCalls > 1 {
		return f.existingOnRetry, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) ListBookedDates(_ context.Context, _ domain.SlotKey, _, _ time.Time) ([]time.Time, error) {
	return f.booked, nil
}

type fakeRateRepo struct {
	rates []*domain.PriceRate
}

// GetRateForDate повторяет семантику репозитория: при пересечении диапазонов
// выигрывает более поздний effective_from
func (f *fakeRateRepo) GetRateForDate(_ context.Context, _ domain.SlotKey, date time.Time) (*domain.PriceRate, error) {
	var match *domain.PriceRate
	for _, rate := range f.rates {
		if rate.Covers(date) {
			match = rate
		}
	}
	if match == nil {
		return nil, priceRateRepo.ErrRateNotFound
	}
	return match, nil
}

type fakePricingService struct {
	multiplier domain.Multiplier
	err        error
}

func (f *fakePricingService) ResolveMultiplier(_ context.Context, _ domain.OfficeLevel, _ int64) (domain.Multiplier, []domain.HierarchyLevel, error) {
	return f.multiplier, nil, f.err
}

type fakeWallet struct {
	balance    int64
	balanceErr error
	debitErr   error
	reverseErr error

	debitedAmount int64
	debitedRef    string
	debitCalls    int
	reversedRefs  []string
}

func (f *fakeWallet) GetBalance(_ context.Context, _ int64) (int64, error) {
	return f.balance, f.balanceErr
}

func (f *fakeWallet) Debit(_ context.Context, _ int64, amount int64, reference string) error {
	f.debitCalls++
	if f.debitErr != nil {
		return f.debitErr
	}
	f.debitedAmount = amount
	f.debitedRef = reference
	return nil
}

func (f *fakeWallet) Reverse(_ context.Context, reference string) error {
	if f.reverseErr != nil {
		return f.reverseErr
	}
	f.reversedRefs = append(f.reversedRefs, reference)
	return nil
}

type fakeAssetStoreClient struct {
	ref string
	err error

	storeCalls int
}

func (f *fakeAssetStoreClient) Store(_ context.Context, _ string, _ io.Reader) (string, error) {
	f.storeCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.ref, nil
}

type fakeCacheInvalidator struct {
	invalidated []string
}

func (f *fakeCacheInvalidator) InvalidateSlot(_ context.Context, slotKey string) {
	f.invalidated = append(f.invalidated, slotKey)
}

// fakeTxManager исполняет fn без настоящей транзакции; commitErr имитирует
// ошибку commit после успешного fn
type fakeTxManager struct {
	commitErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

func date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func regionalSlot() domain.SlotKey {
	return domain.SlotKey{
		AppID:       1,
		CategoryID:  2,
		AdPosition:  domain.AdPositionAds1,
		OfficeLevel: domain.OfficeLevelRegional,
	}
}

type fixture struct {
	bookings  *fakeBookingRepo
	rates     *fakeRateRepo
	pricing   *fakePricingService
	wallet    *fakeWallet
	assets    *fakeAssetStoreClient
	cache     *fakeCacheInvalidator
	txManager *fakeTxManager
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{},
		rates: &fakeRateRepo{rates: []*domain.PriceRate{
			{SlotKey: regionalSlot(), EffectiveFrom: date("2025-01-01"), BasePrice: 100},
		}},
		pricing:   &fakePricingService{multiplier: domain.Multiplier{Num: 12, Den: 1}},
		wallet:    &fakeWallet{balance: 10000},
		assets:    &fakeAssetStoreClient{ref: "assets/banner.png"},
		cache:     &fakeCacheInvalidator{},
		txManager: &fakeTxManager{},
	}

	f.uc = NewUseCase(
		f.bookings,
		f.rates,
		f.pricing,
		f.wallet,
		f.assets,
		f.cache,
		f.txManager,
		10*time.Second,
		nopLogger{},
	)
	f.uc.timeProvider = fixedTime{now: date("2025-01-15")}

	return f
}

func validRequest() *Request {
	return &Request{
		OwnerID:        42,
		SlotKey:        regionalSlot(),
		ScopeID:        10,
		Dates:          []time.Time{date("2025-02-01"), date("2025-02-02")},
		Asset:          &Asset{Filename: "banner.png", Size: 1024, Content: strings.NewReader("png-bytes")},
		IdempotencyKey: "client-key-1",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	// базовый тариф 100, множитель 12, две даты: 1200 × 2 = 2400
	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(100), resp.BasePrice)
	assert.Equal(t, domain.Multiplier{Num: 12, Den: 1}, resp.Multiplier)
	assert.Equal(t, int64(2400), resp.AmountCharged)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "assets/banner.png", resp.AssetRef)
	assert.False(t, resp.AlreadyExisted)

	assert.Equal(t, int64(2400), f.wallet.debitedAmount)
	assert.NotEmpty(t, f.wallet.debitedRef, "debit must carry a ledger reference")
	assert.Empty(t, f.wallet.reversedRefs)
	assert.Equal(t, []string{regionalSlot().String()}, f.cache.invalidated)

	require.NotNil(t, f.bookings.created)
	assert.Equal(t, f.wallet.debitedRef, f.bookings.created.LedgerRef)
	assert.Equal(t, "client-key-1", f.bookings.created.IdempotencyKey)
}

func TestExecute_ServerClockWestOfUTC(t *testing.T) {
	// Серверные часы в поясе UTC-5: "сегодня", распарсенное клиентом как
	// полночь UTC, остается внутри окна бронирования
	f := newFixture()
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 1, 15, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))}

	req := validRequest()
	req.Dates = []time.Time{date("2025-01-15")}

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(1200), resp.AmountCharged)
}

func TestExecute_VaryingRatesAcrossDates(t *testing.T) {
	f := newFixture()
	f.rates.rates = []*domain.PriceRate{
		{SlotKey: regionalSlot(), EffectiveFrom: date("2025-01-01"), BasePrice: 100},
		{SlotKey: regionalSlot(), EffectiveFrom: date("2025-02-02"), BasePrice: 200},
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	// 100×12 за первую дату + 200×12 за вторую
	assert.Equal(t, int64(3600), resp.AmountCharged)
	assert.Equal(t, int64(100), resp.BasePrice, "base price is fixed from the first selected date")
}

func TestExecute_IdempotentReplay(t *testing.T) {
	f := newFixture()
	f.bookings.existing = &domain.Booking{
		ID:             7,
		SlotKey:        regionalSlot(),
		OwnerID:        42,
		Status:         domain.StatusPending,
		AmountCharged:  2400,
		IdempotencyKey: "client-key-1",
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.True(t, resp.AlreadyExisted)

	// повтор не производит никаких новых эффектов
	assert.Zero(t, f.wallet.debitCalls)
	assert.Zero(t, f.assets.storeCalls)
	assert.Zero(t, f.bookings.createCalls)
}

func TestExecute_InsufficientFunds(t *testing.T) {
	f := newFixture()
	f.wallet.balance = 2000 // нужно 2400

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Zero(t, f.assets.storeCalls, "no asset upload after a failed balance check")
	assert.Zero(t, f.bookings.createCalls)
	assert.Zero(t, f.wallet.debitCalls)
}

func TestExecute_DebitRejectedInsideTransaction(t *testing.T) {
	// Баланс прошел предварительную проверку, но списание отклонено:
	// конкурентное расходование кошелька между проверкой и списанием
	f := newFixture()
	f.wallet.debitErr = walletClient.ErrInsufficientFunds

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Empty(t, f.wallet.reversedRefs, "failed debit needs no compensation")
	assert.Empty(t, f.cache.invalidated)
}

func TestExecute_DateConflict(t *testing.T) {
	f := newFixture()
	f.bookings.booked = []time.Time{date("2025-02-02"), date("2025-03-01")}

	_, err := f.uc.Execute(context.Background(), validRequest())

	var conflict *DateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.ErrorIs(t, err, ErrDateAlreadyBooked)
	assert.Equal(t, []time.Time{date("2025-02-02")}, conflict.Dates)

	assert.Zero(t, f.bookings.createCalls, "conflict is detected before the insert")
	assert.Zero(t, f.wallet.debitCalls)
}

func TestExecute_UniqueIndexBackstop(t *testing.T) {
	// Гонка, не пойманная проверкой под блокировкой: частичный уникальный
	// индекс отвергает вставку
	f := newFixture()
	f.bookings.createErr = bookingRepo.ErrDateAlreadyBooked

	_, err := f.uc.Execute(context.Background(), validRequest())

	var conflict *DateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Zero(t, f.wallet.debitCalls)
}

func TestExecute_DuplicateKeyRace(t *testing.T) {
	// Два ретрая одного запроса наперегонки: предварительная проверка ключа
	// промахивается, вставка падает на уникальном ключе идемпотентности,
	// возвращаем бронь победителя
	f := newFixture()
	f.bookings.createErr = bookingRepo.ErrDuplicateIdempotencyKey
	f.bookings.existingOnRetry = &domain.Booking{
		ID:             9,
		SlotKey:        regionalSlot(),
		OwnerID:        42,
		Status:         domain.StatusPending,
		IdempotencyKey: "client-key-1",
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
	assert.True(t, resp.AlreadyExisted, "resolved race is a replay, not a new booking")
	assert.Empty(t, f.wallet.reversedRefs, "debit never succeeded, nothing to reverse")
	assert.Empty(t, f.cache.invalidated, "calendar did not change, cache stays")
}

func TestExecute_CommitFailureReversesDebit(t *testing.T) {
	f := newFixture()
	f.txManager.commitErr = errors.New("driver: bad connection")

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.Equal(t, 1, f.wallet.debitCalls)
	require.Len(t, f.wallet.reversedRefs, 1, "a debit without a committed booking must be reversed")
	assert.Equal(t, f.wallet.debitedRef, f.wallet.reversedRefs[0])
	assert.Empty(t, f.cache.invalidated)
}

func TestExecute_WalletDownOnBalanceCheck(t *testing.T) {
	f := newFixture()
	f.wallet.balanceErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrWalletUnavailable)
	assert.Zero(t, f.bookings.createCalls)
}

func TestExecute_AssetStoreDown(t *testing.T) {
	f := newFixture()
	f.assets.err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrAssetStoreUnavailable)
	assert.Zero(t, f.bookings.createCalls)
	assert.Zero(t, f.wallet.debitCalls)
}

func TestExecute_NotConfigured(t *testing.T) {
	f := newFixture()
	f.rates.rates = nil

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Zero(t, f.wallet.debitCalls)
}

func TestExecute_ZeroMultiplier(t *testing.T) {
	f := newFixture()
	f.pricing.multiplier = domain.Multiplier{Num: 0, Den: 1}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotOrderable)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture()

	t.Run("no dates", func(t *testing.T) {
		req := validRequest()
		req.Dates = nil
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrNoDatesSelected)
	})

	t.Run("missing asset", func(t *testing.T) {
		req := validRequest()
		req.Asset = nil
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrMissingAsset)
	})

	t.Run("asset too large", func(t *testing.T) {
		req := validRequest()
		req.Asset.Size = domain.MaxAssetSizeBytes + 1
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAssetTooLarge)
	})

	t.Run("missing idempotency key", func(t *testing.T) {
		req := validRequest()
		req.IdempotencyKey = ""
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("date in the past", func(t *testing.T) {
		req := validRequest()
		req.Dates = []time.Time{date("2025-01-14")}
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWindow)
	})

	t.Run("date beyond the window", func(t *testing.T) {
		req := validRequest()
		req.Dates = []time.Time{date("2025-04-15")}
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWindow)
	})

	t.Run("missing scope for regional", func(t *testing.T) {
		req := validRequest()
		req.ScopeID = 0
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_DuplicateDatesAreCollapsed(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Dates = []time.Time{date("2025-02-01"), date("2025-02-01"), date("2025-02-02")}

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(2400), resp.AmountCharged, "duplicate dates must not be charged twice")
	require.Len(t, resp.Dates, 2)
}
