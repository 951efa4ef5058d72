package get_pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fakeRateRepo struct {
	rates []*domain.PriceRate
	err   error
}

func (f *fakeRateRepo) ListRatesForRange(_ context.Context, _ domain.SlotKey, _, _ time.Time) ([]*domain.PriceRate, error) {
	return f.rates, f.err
}

type fakeBookingRepo struct {
	booked []time.Time
	err    error
}

func (f *fakeBookingRepo) ListBookedDates(_ context.Context, _ domain.SlotKey, _, _ time.Time) ([]time.Time, error) {
	return f.booked, f.err
}

type fakePricingService struct {
	multiplier domain.Multiplier
	err        error
}

func (f *fakePricingService) ResolveMultiplier(_ context.Context, _ domain.OfficeLevel, _ int64) (domain.Multiplier, []domain.HierarchyLevel, error) {
	return f.multiplier, nil, f.err
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

func newTestUseCase(rates *fakeRateRepo, bookings *fakeBookingRepo, pricing *fakePricingService) *UseCase {
	uc := NewUseCase(rates, bookings, pricing, nil, nopLogger{})
	uc.timeProvider = fixedTime{now: date("2025-01-15")}
	return uc
}

func TestExecute_FullWindowCalendar(t *testing.T) {
	rates := &fakeRateRepo{rates: []*domain.PriceRate{
		{SlotKey: regionalSlot(), EffectiveFrom: date("2025-01-01"), BasePrice: 100},
	}}
	bookings := &fakeBookingRepo{booked: []time.Time{date("2025-02-01")}}
	pricing := &fakePricingService{multiplier: domain.Multiplier{Num: 12, Den: 1}}

	uc := newTestUseCase(rates, bookings, pricing)

	resp, err := uc.Execute(context.Background(), &Request{SlotKey: regionalSlot(), ScopeID: 10})

	require.NoError(t, err)
	assert.Equal(t, date("2025-01-15"), resp.WindowStart)
	assert.Equal(t, date("2025-04-14"), resp.WindowEnd)
	assert.Equal(t, int64(12), resp.MultiplierNum)
	require.Len(t, resp.Days, 90)

	first := resp.Days[0]
	assert.Equal(t, date("2025-01-15"), first.Date)
	assert.True(t, first.Configured)
	assert.Equal(t, int64(100), first.BasePrice)
	assert.Equal(t, int64(1200), first.Price)
	assert.False(t, first.IsBooked)
	assert.True(t, first.Selectable)

	// 2025-02-01 is day 18 of the window and already booked
	bookedDay := resp.Days[17]
	assert.Equal(t, date("2025-02-01"), bookedDay.Date)
	assert.True(t, bookedDay.IsBooked)
	assert.False(t, bookedDay.Selectable)
}

func TestExecute_Deterministic(t *testing.T) {
	rates := &fakeRateRepo{rates: []*domain.PriceRate{
		{SlotKey: regionalSlot(), EffectiveFrom: date("2025-01-01"), BasePrice: 100},
	}}
	pricing := &fakePricingService{multiplier: domain.Multiplier{Num: 12, Den: 1}}

	uc := newTestUseCase(rates, &fakeBookingRepo{}, pricing)
	req := &Request{SlotKey: regionalSlot(), ScopeID: 10}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same inputs must produce the same calendar")
}

func TestExecute_UnconfiguredDaysAreNotSelectable(t *testing.T) {
	// Rate covers only the first half of the window
	to := date("2025-02-14")
	rates := &fakeRateRepo{rates: []*domain.PriceRate{
		{SlotKey: regionalSlot(), EffectiveFrom: date("2025-01-01"), EffectiveTo: &to, BasePrice: 100},
	}}
	pricing := &fakePricingService{multiplier: domain.MultiplierOne}

	uc := newTestUseCase(rates, &fakeBookingRepo{}, pricing)

	resp, err := uc.Execute(context.Background(), &Request{SlotKey: regionalSlot(), ScopeID: 10})
	require.NoError(t, err)

	last := resp.Days[len(resp.Days)-1]
	assert.False(t, last.Configured)
	assert.Zero(t, last.Price)
	assert.False(t, last.Selectable)
}

func TestExecute_LaterRateWinsOnOverlap(t *testing.T) {
	// Repository returns rates ordered by effective_from ASC
	rates := &fakeRateRepo{rates: []*domain.PriceRate{
		{SlotKey: regionalSlot(), EffectiveFrom: date("2025-01-01"), BasePrice: 100},
		{SlotKey: regionalSlot(), EffectiveFrom: date("2025-02-01"), BasePrice: 150},
	}}
	pricing := &fakePricingService{multiplier: domain.MultiplierOne}

	uc := newTestUseCase(rates, &fakeBookingRepo{}, pricing)

	resp, err := uc.Execute(context.Background(), &Request{SlotKey: regionalSlot(), ScopeID: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.Days[0].Price)  // January
	assert.Equal(t, int64(150), resp.Days[17].Price) // February onwards
}

func TestExecute_RangeOutsideWindow(t *testing.T) {
	uc := newTestUseCase(&fakeRateRepo{}, &fakeBookingRepo{}, &fakePricingService{})

	resp, err := uc.Execute(context.Background(), &Request{
		SlotKey: regionalSlot(),
		ScopeID: 10,
		From:    date("2025-06-01"),
		To:      date("2025-06-30"),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Days)
	assert.Equal(t, date("2025-01-15"), resp.WindowStart)
	assert.Equal(t, date("2025-04-14"), resp.WindowEnd)
}

func TestExecute_PartialRangeIsClamped(t *testing.T) {
	rates := &fakeRateRepo{rates: []*domain.PriceRate{
		{SlotKey: regionalSlot(), EffectiveFrom: date("2025-01-01"), BasePrice: 100},
	}}
	uc := newTestUseCase(rates, &fakeBookingRepo{}, &fakePricingService{multiplier: domain.MultiplierOne})

	resp, err := uc.Execute(context.Background(), &Request{
		SlotKey: regionalSlot(),
		ScopeID: 10,
		From:    date("2025-01-01"),
		To:      date("2025-01-20"),
	})

	require.NoError(t, err)
	// [2025-01-15, 2025-01-20] after clamping to the window start
	require.Len(t, resp.Days, 6)
	assert.Equal(t, date("2025-01-15"), resp.Days[0].Date)
}

func TestExecute_ZeroMultiplier(t *testing.T) {
	uc := newTestUseCase(&fakeRateRepo{}, &fakeBookingRepo{}, &fakePricingService{
		multiplier: domain.Multiplier{Num: 0, Den: 1},
	})

	_, err := uc.Execute(context.Background(), &Request{SlotKey: regionalSlot(), ScopeID: 10})

	assert.ErrorIs(t, err, ErrSlotNotOrderable)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeRateRepo{}, &fakeBookingRepo{}, &fakePricingService{})

	t.Run("invalid slot key", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{ScopeID: 10})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing scope for regional", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{SlotKey: regionalSlot()})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("from after to", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			SlotKey: regionalSlot(),
			ScopeID: 10,
			From:    date("2025-02-10"),
			To:      date("2025-02-01"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
