package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/infra/storage/pgerr"
	"github.com/Raorakshith/smartparking/pkg/dbmetrics"
	"github.com/Raorakshith/smartparking/pkg/psqlbuilder"
)

// bookingColumns порядок колонок совпадает с scanBooking
var bookingColumns = []string{
	"id",
	"user_id",
	"lot_id",
	"spot_id",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"hourly_rate",
	"duration_hours",
	"total_cost",
	"expires_at",
	"payment_details",
	"actual_end_time",
	"actual_duration",
	"additional_cost",
	"final_cost",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
// Пересечение с активным бронированием того же места отсекается ограничением
// bookings_spot_no_overlap и возвращается как ErrHoldConflict
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payment, err := encodePayment(booking.Payment)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"lot_id",
			"spot_id",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"hourly_rate",
			"duration_hours",
			"total_cost",
			"expires_at",
			"payment_details",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.LotID,
			booking.SpotID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.HourlyRate,
			booking.DurationHours,
			booking.TotalCost,
			booking.ExpiresAt,
			payment,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: Create - lot=%s spot=%s: %v", ErrHoldConflict, booking.LotID, booking.SpotID, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByFilter получает бронирования с гибкой фильтрацией
//
// Примеры использования:
//
// 1. Бронирования лота на дату (проверка доступности):
//    filter := domain.BookingFilter{LotID: &lotID, DateFrom: &date, DateTo: &date}
//
// 2. История пользователя, новые сначала:
//    filter := domain.BookingFilter{UserID: &userID, NewestFirst: true}
//
// 3. Последние 50 бронирований для дашборда:
//    filter := domain.BookingFilter{NewestFirst: true, Limit: 50}
//
// Внутри транзакции выборка по лоту на конкретную дату блокируется (FOR UPDATE)
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.LotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lot_id": *filter.LotID})
	}
	if filter.SpotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"spot_id": *filter.SpotID})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	// Фильтрация по дате бронирования
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.DateFrom.Format(domain.DateFormat)})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.DateTo.Format(domain.DateFormat)})
	}

	// Фильтрация по времени создания
	if filter.CreatedFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.CreatedFrom})
	}
	if filter.CreatedTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"created_at": *filter.CreatedTo})
	}

	if filter.NewestFirst {
		selectBuilder = selectBuilder.OrderBy("created_at DESC", "id")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date ASC", "start_time ASC", "id")
	}

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	singleDay := filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.Equal(*filter.DateTo)
	if dbmetrics.IsInTransaction(ctx) && filter.LotID != nil && singleDay {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus сохраняет новый статус и поля жизненного цикла бронирования
// Обновление выполняется только если в БД всё ещё статус from (compare-and-swap),
// иначе возвращается ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payment, err := encodePayment(booking.Payment)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", booking.Status).
		Set("expires_at", booking.ExpiresAt).
		Set("payment_details", payment).
		Set("actual_end_time", booking.ActualEndTime).
		Set("actual_duration", booking.ActualDuration).
		Set("additional_cost", booking.AdditionalCost).
		Set("final_cost", booking.FinalCost).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "status": from}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r.classifyMissedUpdate(ctx, booking.ID)
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// classifyMissedUpdate различает отсутствующую строку и смену статуса
func (r *Repository) classifyMissedUpdate(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build check query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - check existence: %v", ErrExecQuery, err)
	}
	return ErrStatusConflict
}

// ExpireHolds переводит неподтверждённые брони с истёкшим сроком в expired и возвращает их
// Строка остаётся, поэтому подтверждение такой брони отвечает Expired, а не NotFound
// lotID ограничивает очистку одним лотом (nil - все лоты)
func (r *Repository) ExpireHolds(ctx context.Context, now time.Time, lotID *string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusTemporary}).
		Where(squirrel.Lt{"expires_at": now})

	if lotID != nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"lot_id": *lotID})
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireHolds - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireHolds - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ExistsByLotAndStatus проверяет, есть ли у лота бронирования в указанном статусе
func (r *Repository) ExistsByLotAndStatus(ctx context.Context, lotID string, status domain.BookingStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inner := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"lot_id": lotID, "status": status})

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("EXISTS (?)", inner)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByLotAndStatus - build query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsByLotAndStatus - scan: %v", ErrScanRow, err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking domain.Booking
		payment []byte
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.LotID,
		&booking.SpotID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.HourlyRate,
		&booking.DurationHours,
		&booking.TotalCost,
		&booking.ExpiresAt,
		&payment,
		&booking.ActualEndTime,
		&booking.ActualDuration,
		&booking.AdditionalCost,
		&booking.FinalCost,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(payment) > 0 {
		var details domain.PaymentDetails
		if err := json.Unmarshal(payment, &details); err != nil {
			return nil, fmt.Errorf("decode payment details of booking %s: %w", booking.ID, err)
		}
		booking.Payment = &details
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// encodePayment сериализует платёж в JSON-строку для колонки JSONB
func encodePayment(p *domain.PaymentDetails) (interface{}, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodePayment, err)
	}
	return string(data), nil
}

