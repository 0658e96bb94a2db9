package reservation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"
)

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

var (
	updateStatus = regexp.QuoteMeta("UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3")
	selectStatus = regexp.QuoteMeta("SELECT status FROM reservations WHERE id = $1")
)

func TestApplyStatusTransition(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "applied",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateStatus).
					WithArgs(domain.StatusActive, int64(1), domain.StatusConfirmed).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already applied",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateStatus).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(selectStatus).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("active"))
			},
		},
		{
			name: "cancelled meanwhile",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateStatus).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(selectStatus).
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("cancelled"))
			},
			wantErr: ErrStatusConflict,
		},
		{
			name: "deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateStatus).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(selectStatus).WillReturnRows(sqlmock.NewRows([]string{"status"}))
			},
			wantErr: ErrReservationNotFound,
		},
		{
			name: "database down",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateStatus).WillReturnError(assert.AnError)
			},
			wantErr: ErrExecQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setup(mock)

			err := repo.ApplyStatusTransition(context.Background(), 1, domain.StatusConfirmed, domain.StatusActive)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepository(t)
	start := time.Date(2024, 5, 6, 6, 0, 0, 0, time.UTC)
	end := start.Add(6 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			int64(5), int64(2), int64(9), "halfday", start, end, "confirmed", 40.0,
			"morning", nil, nil, nil, start, start,
		))

	r, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(2), r.SpaceID)
	assert.Equal(t, domain.PricingHalfDay, r.PricingType)
	assert.Equal(t, domain.StatusConfirmed, r.Status)
	require.NotNil(t, r.Session)
	assert.Equal(t, domain.SessionMorning, *r.Session)
	assert.Nil(t, r.Notes)
	assert.Equal(t, end, r.EndAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestListOccupying_FiltersByStatusAndPeriod(t *testing.T) {
	repo, mock := newRepository(t)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM reservations WHERE space_id = $1 AND end_at + INTERVAL '1 day' > $2 AND start_at < $3 AND status IN ($4,$5) ORDER BY start_at ASC, id ASC",
	)).
		WithArgs(int64(3), from, to, "confirmed", "active").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			int64(1), int64(3), int64(9), "daily", from, from.AddDate(0, 0, 2), "confirmed", 210.0,
			nil, "quiet please", nil, nil, from, from,
		))

	reservations, err := repo.ListOccupying(context.Background(), 3, from, to)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Nil(t, reservations[0].Session)
	require.NotNil(t, reservations[0].Notes)
	assert.Equal(t, "quiet please", *reservations[0].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(77), now, now))

	r, err := repo.Create(context.Background(), &domain.Reservation{
		SpaceID:     3,
		UserID:      9,
		PricingType: domain.PricingHourly,
		StartAt:     now,
		EndAt:       now.Add(time.Hour),
		Status:      domain.StatusPending,
		BasePrice:   15,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), r.ID)
	assert.Equal(t, now, r.CreatedAt)
}
