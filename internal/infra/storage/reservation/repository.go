package reservation

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
)

const table = "reservations"

var columns = []string{
	"id",
	"space_id",
	"user_id",
	"pricing_type",
	"start_at",
	"end_at",
	"status",
	"base_price",
	"session",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
// Если в контексте есть транзакция, запрос выполняется в ней
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"space_id",
			"user_id",
			"pricing_type",
			"start_at",
			"end_at",
			"status",
			"base_price",
			"session",
			"notes",
		).
		Values(
			reservation.SpaceID,
			reservation.UserID,
			reservation.PricingType,
			reservation.StartAt,
			reservation.EndAt,
			reservation.Status,
			reservation.BasePrice,
			reservation.Session,
			reservation.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// List возвращает бронирования по фильтру, отсортированные по началу
//
// Фильтр по периоду выбирает с запасом в сутки: бронирования на весь день хранят
// в end_at полночь последнего дня. Точное пересечение с периодом считает движок.
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_at ASC", "id ASC")

	if filter.SpaceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"space_id": *filter.SpaceID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("end_at + INTERVAL '1 day' > ?", *filter.From))
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
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

	return scanReservations(rows)
}

// ListOccupying возвращает бронирования помещения в статусах confirmed/active,
// пересекающие интервал [from, to)
func (r *Repository) ListOccupying(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error) {
	return r.List(ctx, domain.ReservationsFilter{
		SpaceID:  &spaceID,
		From:     &from,
		To:       &to,
		Statuses: domain.OccupyingStatuses,
	})
}

// ListForLifecycle возвращает бронирования, статус которых может смениться по времени к моменту now
func (r *Repository) ListForLifecycle(ctx context.Context, now time.Time) ([]*domain.Reservation, error) {
	// Начало бронирований на весь день хранится полночью, запас в сутки покрывает смещение часового пояса
	to := now.Add(24 * time.Hour)
	return r.List(ctx, domain.ReservationsFilter{
		To:       &to,
		Statuses: domain.LifecycleStatuses,
	})
}

// ApplyStatusTransition переводит бронирование из статуса from в статус to
// Повторное применение того же перехода не ошибка: если статус уже равен to, возвращается nil
func (r *Repository) ApplyStatusTransition(ctx context.Context, id int64, from, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ApplyStatusTransition - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ApplyStatusTransition - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ApplyStatusTransition - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	current, err := r.currentStatus(ctx, id)
	if err != nil {
		return err
	}
	if current == to {
		return nil
	}

	return fmt.Errorf("%w: reservation %d is %s, expected %s", ErrStatusConflict, id, current, from)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) currentStatus(ctx context.Context, id int64) (domain.ReservationStatus, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status").
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: currentStatus - build select query: %v", ErrBuildQuery, err)
	}

	var status domain.ReservationStatus
	err = executor.QueryRowContext(ctx, query, args...).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrReservationNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: currentStatus - scan status: %v", ErrScanRow, err)
	}

	return status, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation          domain.Reservation
		session              sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.SpaceID,
		&reservation.UserID,
		&reservation.PricingType,
		&reservation.StartAt,
		&reservation.EndAt,
		&reservation.Status,
		&reservation.BasePrice,
		&session,
		&reservation.Notes,
		&reservation.CancellationReason,
		&reservation.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if session.Valid {
		s := domain.HalfDaySession(session.String)
		reservation.Session = &s
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
