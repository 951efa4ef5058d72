package submit_booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	"github.com/m04kA/SMC-AdsBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if err := req.SlotKey.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.SlotKey.OfficeLevel != domain.OfficeLevelBranch && req.ScopeID <= 0 {
		return fmt.Errorf("%w: scopeID is required for level %s", ErrInvalidInput, req.SlotKey.OfficeLevel)
	}

	if req.IdempotencyKey == "" {
		return fmt.Errorf("%w: idempotencyKey is required", ErrInvalidInput)
	}

	if len(req.Dates) == 0 {
		return ErrNoDatesSelected
	}
	if len(req.Dates) > domain.MaxDatesPerBooking {
		return fmt.Errorf("%w: at most %d dates per booking", ErrInvalidInput, domain.MaxDatesPerBooking)
	}

	if req.Asset == nil || req.Asset.Content == nil {
		return ErrMissingAsset
	}
	if req.Asset.Size > domain.MaxAssetSizeBytes {
		return ErrAssetTooLarge
	}

	if req.LinkURL != nil && len(*req.LinkURL) > domain.MaxLinkURLLength {
		return fmt.Errorf("%w: linkUrl is too long", ErrInvalidInput)
	}

	return nil
}

// normalizeDates обнуляет время, убирает дубли и сортирует даты по возрастанию
func normalizeDates(dates []time.Time) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	normalized := make([]time.Time, 0, len(dates))

	for _, d := range dates {
		day := types.DateOnly(d)
		key := day.Format(domain.DateFormat)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, day)
	}

	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Before(normalized[j])
	})

	return normalized
}

// validateWindow проверяет, что каждая дата лежит в текущем окне бронирования.
// Дата в прошлом относительно серверных часов не проходит даже при
// рассинхронизированных часах клиента: окно начинается с серверного "сегодня".
func validateWindow(dates []time.Time, window domain.BookingWindow) error {
	for _, d := range dates {
		if !window.Contains(d) {
			return fmt.Errorf("%w: %s is outside [%s, %s]",
				ErrOutsideWindow,
				d.Format(domain.DateFormat),
				window.Start.Format(domain.DateFormat),
				window.End.Format(domain.DateFormat))
		}
	}
	return nil
}

// intersectDates возвращает даты из selected, присутствующие в booked
func intersectDates(selected, booked []time.Time) []time.Time {
	bookedSet := make(map[string]struct{}, len(booked))
	for _, d := range booked {
		bookedSet[d.Format(domain.DateFormat)] = struct{}{}
	}

	conflicts := make([]time.Time, 0)
	for _, d := range selected {
		if _, ok := bookedSet[d.Format(domain.DateFormat)]; ok {
			conflicts = append(conflicts, d)
		}
	}
	return conflicts
}
