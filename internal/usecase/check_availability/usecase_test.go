package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	spaceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/space"
)

type mockSpaceRepo struct {
	getByIDFn func(ctx context.Context, id int64) (*domain.Space, error)
}

func (m *mockSpaceRepo) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	return m.getByIDFn(ctx, id)
}

type mockReservationRepo struct {
	listOccupyingFn func(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error)
}

func (m *mockReservationRepo) ListOccupying(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error) {
	return m.listOccupyingFn(ctx, spaceID, from, to)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func at(d, h int) time.Time {
	return time.Date(2024, 5, d, h, 0, 0, 0, time.UTC)
}

func alwaysOpenSpace() *domain.Space {
	return &domain.Space{ID: 1, Schedule: domain.OperationalSchedule{AlwaysOpen: true}}
}

func TestExecute_BuildsCalendar(t *testing.T) {
	var gotFrom, gotTo time.Time
	reservations := []*domain.Reservation{
		{ID: 1, SpaceID: 1, PricingType: domain.PricingHourly, StartAt: at(6, 9), EndAt: at(6, 11), Status: domain.StatusConfirmed},
		{ID: 2, SpaceID: 1, PricingType: domain.PricingDaily, StartAt: day(7), EndAt: day(7), Status: domain.StatusActive},
	}

	uc := NewUseCase(
		&mockSpaceRepo{getByIDFn: func(context.Context, int64) (*domain.Space, error) { return alwaysOpenSpace(), nil }},
		&mockReservationRepo{listOccupyingFn: func(_ context.Context, _ int64, from, to time.Time) ([]*domain.Reservation, error) {
			gotFrom, gotTo = from, to
			return reservations, nil
		}},
		Options{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{SpaceID: 1, From: day(6), To: day(8)})
	require.NoError(t, err)

	assert.Equal(t, day(6), gotFrom)
	assert.Equal(t, day(9), gotTo)
	require.Len(t, resp.Days, 3)

	assert.True(t, resp.Days[0].Available)
	assert.Equal(t, 2, resp.Days[0].BookedHours)
	assert.False(t, resp.Days[1].Available)
	assert.True(t, resp.Days[2].Available)
	assert.Empty(t, resp.Days[2].Reservations)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, 9, resp.Slots[0].Hour)
	assert.Equal(t, 10, resp.Slots[1].Hour)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		spaceFn func(context.Context, int64) (*domain.Space, error)
		listErr error
		wantErr error
	}{
		{
			name:    "to before from",
			req:     &Request{SpaceID: 1, From: day(8), To: day(6)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "range too long",
			req:     &Request{SpaceID: 1, From: day(1), To: day(1).AddDate(2, 0, 0)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing space id",
			req:     &Request{From: day(1), To: day(2)},
			wantErr: ErrInvalidInput,
		},
		{
			name: "space not found",
			req:  &Request{SpaceID: 9, From: day(1), To: day(2)},
			spaceFn: func(context.Context, int64) (*domain.Space, error) {
				return nil, spaceRepo.ErrSpaceNotFound
			},
			wantErr: ErrSpaceNotFound,
		},
		{
			name: "space repository down",
			req:  &Request{SpaceID: 1, From: day(1), To: day(2)},
			spaceFn: func(context.Context, int64) (*domain.Space, error) {
				return nil, errors.New("connection refused")
			},
			wantErr: ErrUpstreamUnavailable,
		},
		{
			name:    "reservation repository down",
			req:     &Request{SpaceID: 1, From: day(1), To: day(2)},
			listErr: errors.New("timeout"),
			wantErr: ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spaceFn := tt.spaceFn
			if spaceFn == nil {
				spaceFn = func(context.Context, int64) (*domain.Space, error) { return alwaysOpenSpace(), nil }
			}
			uc := NewUseCase(
				&mockSpaceRepo{getByIDFn: spaceFn},
				&mockReservationRepo{listOccupyingFn: func(context.Context, int64, time.Time, time.Time) ([]*domain.Reservation, error) {
					return nil, tt.listErr
				}},
				Options{MaxRangeDays: domain.DefaultMaxRangeDays},
				nopLogger{},
			)

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
