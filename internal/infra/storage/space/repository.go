package space

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

const (
	spacesTable    = "spaces"
	schedulesTable = "space_schedules"
	pricesTable    = "space_prices"
)

// Repository репозиторий помещений: карточка, недельное расписание и прайс
// Create и Update пишут в три таблицы, вызывающая сторона оборачивает их в транзакцию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория помещений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет помещение вместе с расписанием и прайсом
func (r *Repository) Create(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(spacesTable).
		Columns("name", "always_open").
		Values(space.Name, space.Schedule.AlwaysOpen).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&space.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.insertSchedule(ctx, space.ID, space.Schedule); err != nil {
		return nil, err
	}
	if err := r.insertPrices(ctx, space.ID, space.Prices); err != nil {
		return nil, err
	}

	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time

	return space, nil
}

// GetByID получает помещение по ID
// В транзакции строка помещения блокируется: создание бронирований одного помещения идёт по очереди
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "always_open", "created_at", "updated_at").
		From(spacesTable).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		space                domain.Space
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&space.ID,
		&space.Name,
		&space.Schedule.AlwaysOpen,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan space: %v", ErrScanRow, err)
	}

	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time

	if space.Schedule.Days, err = r.getSchedule(ctx, id); err != nil {
		return nil, err
	}
	if space.Prices, err = r.getPrices(ctx, id); err != nil {
		return nil, err
	}

	return &space, nil
}

// Update перезаписывает карточку, расписание и прайс помещения
func (r *Repository) Update(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(spacesTable).
		Set("name", space.Name).
		Set("always_open", space.Schedule.AlwaysOpen).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": space.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	if err := r.deleteChildren(ctx, schedulesTable, space.ID); err != nil {
		return nil, err
	}
	if err := r.insertSchedule(ctx, space.ID, space.Schedule); err != nil {
		return nil, err
	}
	if err := r.deleteChildren(ctx, pricesTable, space.ID); err != nil {
		return nil, err
	}
	if err := r.insertPrices(ctx, space.ID, space.Prices); err != nil {
		return nil, err
	}

	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time

	return space, nil
}

func (r *Repository) insertSchedule(ctx context.Context, spaceID int64, schedule domain.OperationalSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(schedulesTable).
		Columns("space_id", "weekday", "is_open", "open_time", "close_time")
	for weekday, day := range schedule.Days {
		openTime, closeTime := day.OpenTime, day.CloseTime
		if !day.IsOpen {
			openTime, closeTime = "", ""
		}
		insert = insert.Values(spaceID, weekday, day.IsOpen, openTime, closeTime)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSchedule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertSchedule - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) insertPrices(ctx context.Context, spaceID int64, prices domain.PriceTable) error {
	if len(prices) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(pricesTable).Columns("space_id", "pricing_type", "rate")
	// Порядок вставки фиксирован, чтобы запрос не зависел от обхода map
	for _, pricingType := range domain.PricingTypes {
		rate, ok := prices[pricingType]
		if !ok {
			continue
		}
		insert = insert.Values(spaceID, pricingType, rate)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertPrices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertPrices - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) deleteChildren(ctx context.Context, table string, spaceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"space_id": spaceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: deleteChildren - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteChildren - execute delete from %s: %v", ErrExecQuery, table, err)
	}
	return nil
}

func (r *Repository) getSchedule(ctx context.Context, spaceID int64) ([domain.DaysPerWeek]domain.DaySchedule, error) {
	var days [domain.DaysPerWeek]domain.DaySchedule
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "is_open", "open_time", "close_time").
		From(schedulesTable).
		Where(squirrel.Eq{"space_id": spaceID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return days, fmt.Errorf("%w: getSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return days, fmt.Errorf("%w: getSchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			weekday   int
			isOpen    bool
			openTime  types.TimeString
			closeTime types.TimeString
		)
		if err := rows.Scan(&weekday, &isOpen, &openTime, &closeTime); err != nil {
			return days, fmt.Errorf("%w: getSchedule - scan row: %v", ErrScanRow, err)
		}
		if weekday < int(time.Sunday) || weekday > int(time.Saturday) {
			continue
		}
		days[weekday] = domain.DaySchedule{IsOpen: isOpen, OpenTime: openTime, CloseTime: closeTime}
	}

	if err := rows.Err(); err != nil {
		return days, fmt.Errorf("%w: getSchedule - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

func (r *Repository) getPrices(ctx context.Context, spaceID int64) (domain.PriceTable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("pricing_type", "rate").
		From(pricesTable).
		Where(squirrel.Eq{"space_id": spaceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getPrices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getPrices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	prices := make(domain.PriceTable)
	for rows.Next() {
		var (
			pricingType domain.PricingType
			rate        float64
		)
		if err := rows.Scan(&pricingType, &rate); err != nil {
			return nil, fmt.Errorf("%w: getPrices - scan row: %v", ErrScanRow, err)
		}
		prices[pricingType] = rate
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getPrices - rows error: %v", ErrScanRow, err)
	}

	return prices, nil
}
