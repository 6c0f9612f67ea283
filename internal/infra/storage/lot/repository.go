package lot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/pkg/dbmetrics"
	"github.com/Raorakshith/smartparking/pkg/psqlbuilder"
)

var lotColumns = []string{
	"id",
	"name",
	"location",
	"latitude",
	"longitude",
	"hourly_rate",
	"total_spots",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий парковочных лотов и их мест
// Create и Update пишут в две таблицы, вызывающий оборачивает их в транзакцию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет лот вместе со списком мест
func (r *Repository) Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_lots").
		Columns("id", "name", "location", "latitude", "longitude", "hourly_rate", "total_spots", "active").
		Values(lot.ID, lot.Name, lot.Location, lot.Latitude, lot.Longitude, lot.HourlyRate, lot.TotalSpots, lot.Active).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&lot.CreatedAt, &lot.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.insertSpots(ctx, lot.ID, lot.Spots); err != nil {
		return nil, err
	}

	return lot, nil
}

// GetByID получает лот со списком мест в исходном порядке
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(lotColumns...).
		From("parking_lots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	lot, err := scanLot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lot: %v", ErrScanRow, err)
	}

	spots, err := r.getSpots(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	lot.Spots = spots[id]

	return lot, nil
}

// List получает лоты, отсортированные по имени
// activeOnly - только активные (для пользователей)
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lotColumns...).
		From("parking_lots").
		OrderBy("name ASC", "id")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lots := make([]*domain.ParkingLot, 0)
	ids := make([]string, 0)
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		lots = append(lots, lot)
		ids = append(ids, lot.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return lots, nil
	}

	spots, err := r.getSpots(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, lot := range lots {
		lot.Spots = spots[lot.ID]
	}

	return lots, nil
}

// Update обновляет атрибуты лота и полностью заменяет список мест
func (r *Repository) Update(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_lots").
		Set("name", lot.Name).
		Set("location", lot.Location).
		Set("latitude", lot.Latitude).
		Set("longitude", lot.Longitude).
		Set("hourly_rate", lot.HourlyRate).
		Set("total_spots", lot.TotalSpots).
		Set("active", lot.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": lot.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&lot.CreatedAt, &lot.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("parking_spots").
		Where(squirrel.Eq{"lot_id": lot.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build delete spots query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: Update - delete spots: %v", ErrExecQuery, err)
	}

	if err := r.insertSpots(ctx, lot.ID, lot.Spots); err != nil {
		return nil, err
	}

	return lot, nil
}

// SetActive включает или выключает лот (мягкое удаление)
func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_lots").
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SetActive", query, args)
}

// Delete физически удаляет лот, места удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parking_lots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrLotNotFound
	}
	return nil
}

func (r *Repository) insertSpots(ctx context.Context, lotID string, spots []domain.Spot) error {
	if len(spots) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("parking_spots").
		Columns("lot_id", "spot_id", "category", "accessible", "position")
	for i, s := range spots {
		insertBuilder = insertBuilder.Values(lotID, s.ID, s.Category, s.Accessible, i)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSpots - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertSpots - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// getSpots возвращает места нескольких лотов, сгруппированные по lot_id
func (r *Repository) getSpots(ctx context.Context, lotIDs []string) (map[string][]domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("lot_id", "spot_id", "category", "accessible").
		From("parking_spots").
		Where(squirrel.Eq{"lot_id": lotIDs}).
		OrderBy("lot_id", "position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getSpots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getSpots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string][]domain.Spot, len(lotIDs))
	for rows.Next() {
		var (
			lotID string
			spot  domain.Spot
		)
		if err := rows.Scan(&lotID, &spot.ID, &spot.Category, &spot.Accessible); err != nil {
			return nil, fmt.Errorf("%w: getSpots - scan row: %v", ErrScanRow, err)
		}
		result[lotID] = append(result[lotID], spot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getSpots - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLot(row rowScanner) (*domain.ParkingLot, error) {
	var lot domain.ParkingLot
	err := row.Scan(
		&lot.ID,
		&lot.Name,
		&lot.Location,
		&lot.Latitude,
		&lot.Longitude,
		&lot.HourlyRate,
		&lot.TotalSpots,
		&lot.Active,
		&lot.CreatedAt,
		&lot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lot, nil
}
