package pricerate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	"github.com/m04kA/SMC-AdsBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdsBookingService/pkg/psqlbuilder"
)

// Repository репозиторий базовых тарифов рекламных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var rateColumns = []string{
	"id",
	"app_id",
	"category_id",
	"ad_position",
	"office_level",
	"effective_from",
	"effective_to",
	"base_price",
	"created_at",
	"updated_at",
}

// GetRateForDate возвращает базовый тариф слота, действующий на указанную дату.
// При пересекающихся диапазонах выигрывает тариф с более поздним effective_from.
func (r *Repository) GetRateForDate(ctx context.Context, key domain.SlotKey, date time.Time) (*domain.PriceRate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rateColumns...).
		From("ad_price_rates").
		Where(squirrel.Eq{
			"app_id":       key.AppID,
			"category_id":  key.CategoryID,
			"ad_position":  key.AdPosition,
			"office_level": key.OfficeLevel,
		}).
		Where(squirrel.LtOrEq{"effective_from": date}).
		Where(squirrel.Or{
			squirrel.Eq{"effective_to": nil},
			squirrel.GtOrEq{"effective_to": date},
		}).
		OrderBy("effective_from DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRateForDate - build select query: %v", ErrBuildQuery, err)
	}

	rate, err := r.scanRate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRateForDate - scan rate: %v", ErrScanRow, err)
	}

	return rate, nil
}

// ListRatesForRange возвращает все тарифы слота, пересекающие диапазон [from, to].
// Используется для прайсинга всего окна бронирования одним запросом.
func (r *Repository) ListRatesForRange(ctx context.Context, key domain.SlotKey, from, to time.Time) ([]*domain.PriceRate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rateColumns...).
		From("ad_price_rates").
		Where(squirrel.Eq{
			"app_id":       key.AppID,
			"category_id":  key.CategoryID,
			"ad_position":  key.AdPosition,
			"office_level": key.OfficeLevel,
		}).
		Where(squirrel.LtOrEq{"effective_from": to}).
		Where(squirrel.Or{
			squirrel.Eq{"effective_to": nil},
			squirrel.GtOrEq{"effective_to": from},
		}).
		OrderBy("effective_from ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRatesForRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRatesForRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rates := make([]*domain.PriceRate, 0)
	for rows.Next() {
		rate, err := r.scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRatesForRange - scan row: %v", ErrScanRow, err)
		}
		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRatesForRange - rows error: %v", ErrScanRow, err)
	}

	return rates, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanRate(row rowScanner) (*domain.PriceRate, error) {
	var rate domain.PriceRate
	var effectiveTo sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rate.ID,
		&rate.SlotKey.AppID,
		&rate.SlotKey.CategoryID,
		&rate.SlotKey.AdPosition,
		&rate.SlotKey.OfficeLevel,
		&rate.EffectiveFrom,
		&effectiveTo,
		&rate.BasePrice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if effectiveTo.Valid {
		rate.EffectiveTo = &effectiveTo.Time
	}
	rate.CreatedAt = createdAt.Time
	rate.UpdatedAt = updatedAt.Time

	return &rate, nil
}