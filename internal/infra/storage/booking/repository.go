package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AdsBookingService/internal/domain"
	"github.com/m04kA/SMC-AdsBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdsBookingService/pkg/psqlbuilder"
)

// Имена constraint'ов из миграций: по ним различаем причину unique violation
const (
	constraintActiveDate     = "booking_dates_slot_date_active_idx"
	constraintIdempotencyKey = "bookings_owner_idempotency_key"
)

// Repository репозиторий бронирований рекламных слотов.
// Работает с двумя таблицами: bookings (заголовок) и booking_dates (даты брони,
// по строке на календарный день, с частичным уникальным индексом по активным датам).
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"app_id",
	"category_id",
	"ad_position",
	"office_level",
	"owner_id",
	"asset_ref",
	"link_url",
	"base_price",
	"multiplier_num",
	"multiplier_den",
	"amount_charged",
	"status",
	"rejection_reason",
	"moderated_at",
	"idempotency_key",
	"ledger_ref",
	"created_at",
	"updated_at",
}

// Create создает бронирование вместе со строками дат.
// Предназначен для вызова внутри сериализуемой транзакции (см. usecase
// submit_booking): вставка строк дат служит финальной защитой от двойного
// бронирования, нарушение уникального индекса транслируется в ErrDateAlreadyBooked.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"app_id",
			"category_id",
			"ad_position",
			"office_level",
			"owner_id",
			"asset_ref",
			"link_url",
			"base_price",
			"multiplier_num",
			"multiplier_den",
			"amount_charged",
			"status",
			"idempotency_key",
			"ledger_ref",
		).
		Values(
			b.SlotKey.AppID,
			b.SlotKey.CategoryID,
			b.SlotKey.AdPosition,
			b.SlotKey.OfficeLevel,
			b.OwnerID,
			b.AssetRef,
			b.LinkURL,
			b.BasePrice,
			b.Multiplier.Num,
			b.Multiplier.Den,
			b.AmountCharged,
			b.Status,
			b.IdempotencyKey,
			b.LedgerRef,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, constraintIdempotencyKey) {
			return nil, ErrDuplicateIdempotencyKey
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	// Вставляем даты одной командой: либо все, либо ни одной
	datesBuilder := psqlbuilder.Insert("booking_dates").
		Columns(
			"booking_id",
			"app_id",
			"category_id",
			"ad_position",
			"office_level",
			"booked_date",
		)
	for _, date := range b.Dates {
		datesBuilder = datesBuilder.Values(
			b.ID,
			b.SlotKey.AppID,
			b.SlotKey.CategoryID,
			b.SlotKey.AdPosition,
			b.SlotKey.OfficeLevel,
			date,
		)
	}

	query, args, err = datesBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build dates insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, constraintActiveDate) {
			return nil, ErrDateAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Create - execute dates insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID вместе с датами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.loadDates(ctx, executor, []*domain.Booking{b}); err != nil {
		return nil, err
	}

	return b, nil
}

// GetByIdempotencyKey получает бронирование владельца по ключу идемпотентности.
// Используется в начале транзакции SubmitBooking: повтор запроса с тем же
// ключом возвращает уже созданное бронирование без повторного списания.
func (r *Repository) GetByIdempotencyKey(ctx context.Context, ownerID int64, key string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_id": ownerID, "idempotency_key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - scan booking: %v", ErrScanRow, err)
	}

	if err := r.loadDates(ctx, executor, []*domain.Booking{b}); err != nil {
		return nil, err
	}

	return b, nil
}

// ListBookedDates возвращает занятые даты слота в диапазоне [from, to].
// Учитываются только активные брони (строки с released = false).
// Внутри транзакции добавляет FOR UPDATE: сериализация конкурирующих
// бронирований одного слота без глобальной блокировки.
func (r *Repository) ListBookedDates(ctx context.Context, key domain.SlotKey, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("booked_date").
		From("booking_dates").
		Where(squirrel.Eq{
			"app_id":       key.AppID,
			"category_id":  key.CategoryID,
			"ad_position":  key.AdPosition,
			"office_level": key.OfficeLevel,
			"released":     false,
		}).
		Where(squirrel.GtOrEq{"booked_date": from}).
		Where(squirrel.LtOrEq{"booked_date": to}).
		OrderBy("booked_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: ListBookedDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// ListByOwner возвращает историю бронирований владельца, новые первыми
func (r *Repository) ListByOwner(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"owner_id": filter.OwnerID}).
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	if err := r.loadDates(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// UpdateStatus переводит pending-бронирование в новый статус модерации.
// Фильтр по статусу в WHERE защищает от конкурентной модерации: второй
// переход не находит pending-строку и не дает повторного возврата средств.
// При отклонении дополнительно освобождает даты (released = true),
// после чего они снова доступны для бронирования.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("rejection_reason", reason).
		Set("moderated_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyModerated
	}

	if status == domain.StatusRejected {
		query, args, err := psqlbuilder.Update("booking_dates").
			Set("released", true).
			Where(squirrel.Eq{"booking_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: UpdateStatus - build release query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: UpdateStatus - release dates: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// loadDates подгружает даты для перечисленных бронирований
func (r *Repository) loadDates(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	query, args, err := psqlbuilder.Select("booking_id", "booked_date").
		From("booking_dates").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booked_date ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID int64
		var date time.Time
		if err := rows.Scan(&bookingID, &date); err != nil {
			return fmt.Errorf("%w: loadDates - scan row: %v", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Dates = append(b.Dates, date)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadDates - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var moderatedAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.SlotKey.AppID,
		&b.SlotKey.CategoryID,
		&b.SlotKey.AdPosition,
		&b.SlotKey.OfficeLevel,
		&b.OwnerID,
		&b.AssetRef,
		&b.LinkURL,
		&b.BasePrice,
		&b.Multiplier.Num,
		&b.Multiplier.Den,
		&b.AmountCharged,
		&b.Status,
		&b.RejectionReason,
		&moderatedAt,
		&b.IdempotencyKey,
		&b.LedgerRef,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if moderatedAt.Valid {
		b.ModeratedAt = &moderatedAt.Time
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// isUniqueViolation проверяет, что ошибка вызвана нарушением указанного unique constraint
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}
