package validate_candidate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/pricing"
	spaceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/space"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
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

type recordingMetrics struct {
	violations []string
	conflicts  []string
}

func (m *recordingMetrics) RecordViolation(kind string) { m.violations = append(m.violations, kind) }
func (m *recordingMetrics) RecordConflict(pricingType string) {
	m.conflicts = append(m.conflicts, pricingType)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(d, h int) time.Time {
	return time.Date(2024, 5, d, h, 0, 0, 0, time.UTC)
}

// weekdaySpace открыто с понедельника по пятницу 09:00-18:00
func weekdaySpace() *domain.Space {
	s := &domain.Space{
		ID:     1,
		Prices: domain.PriceTable{domain.PricingHourly: 100, domain.PricingDaily: 600},
	}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		s.Schedule.Days[wd] = domain.DaySchedule{IsOpen: true, OpenTime: types.TimeString("09:00"), CloseTime: types.TimeString("18:00")}
	}
	return s
}

func newUseCase(existing []*domain.Reservation, m Metrics) *UseCase {
	return NewUseCase(
		&mockSpaceRepo{getByIDFn: func(context.Context, int64) (*domain.Space, error) { return weekdaySpace(), nil }},
		&mockReservationRepo{listOccupyingFn: func(context.Context, int64, time.Time, time.Time) ([]*domain.Reservation, error) {
			return existing, nil
		}},
		m,
		Options{},
		nopLogger{},
	)
}

func TestExecute_Valid(t *testing.T) {
	m := &recordingMetrics{}
	uc := newUseCase(nil, m)

	resp, err := uc.Execute(context.Background(), &Request{
		SpaceID:     1,
		PricingType: domain.PricingHourly,
		Params:      pricing.Params{Start: at(6, 10), End: at(6, 12)},
	})
	require.NoError(t, err)

	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Violations)
	assert.Equal(t, 2, resp.Units)
	assert.Equal(t, 200.0, resp.BasePrice)
	assert.True(t, resp.PriceAvailable)
	assert.Empty(t, m.violations)
}

func TestExecute_Violations(t *testing.T) {
	existing := []*domain.Reservation{
		{ID: 7, SpaceID: 1, PricingType: domain.PricingHourly, StartAt: at(6, 10), EndAt: at(6, 12), Status: domain.StatusConfirmed},
	}

	tests := []struct {
		name      string
		req       *Request
		wantKinds []domain.ViolationKind
	}{
		{
			name:      "overlap with confirmed reservation",
			req:       &Request{SpaceID: 1, PricingType: domain.PricingHourly, Params: pricing.Params{Start: at(6, 11), End: at(6, 13)}},
			wantKinds: []domain.ViolationKind{domain.ViolationOverlap},
		},
		{
			name:      "ends after closing",
			req:       &Request{SpaceID: 1, PricingType: domain.PricingHourly, Params: pricing.Params{Start: at(6, 17), End: at(6, 19)}},
			wantKinds: []domain.ViolationKind{domain.ViolationOutsideHours},
		},
		{
			name:      "daily range over sunday",
			req:       &Request{SpaceID: 1, PricingType: domain.PricingDaily, Params: pricing.Params{Start: at(3, 0), End: at(5, 0)}},
			wantKinds: []domain.ViolationKind{domain.ViolationClosedDay, domain.ViolationClosedDay},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &recordingMetrics{}
			resp, err := newUseCase(existing, m).Execute(context.Background(), tt.req)
			require.NoError(t, err)

			assert.False(t, resp.Valid)
			kinds := make([]domain.ViolationKind, 0, len(resp.Violations))
			for _, v := range resp.Violations {
				kinds = append(kinds, v.Kind)
			}
			assert.Equal(t, tt.wantKinds, kinds)
			assert.Len(t, m.violations, len(tt.wantKinds))
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		spaceFn func(context.Context, int64) (*domain.Space, error)
		wantErr error
	}{
		{
			name:    "unknown pricing type",
			req:     &Request{SpaceID: 1, PricingType: "weekly"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "end before start",
			req:     &Request{SpaceID: 1, PricingType: domain.PricingHourly, Params: pricing.Params{Start: at(6, 12), End: at(6, 10)}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "space not found",
			req:  &Request{SpaceID: 2, PricingType: domain.PricingDaily},
			spaceFn: func(context.Context, int64) (*domain.Space, error) {
				return nil, spaceRepo.ErrSpaceNotFound
			},
			wantErr: ErrSpaceNotFound,
		},
		{
			name: "space repository down",
			req:  &Request{SpaceID: 2, PricingType: domain.PricingDaily},
			spaceFn: func(context.Context, int64) (*domain.Space, error) {
				return nil, errors.New("connection reset")
			},
			wantErr: ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(nil, &recordingMetrics{})
			if tt.spaceFn != nil {
				uc.spaceRepo = &mockSpaceRepo{getByIDFn: tt.spaceFn}
			}

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
