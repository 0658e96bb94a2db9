package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/pricing"
	"github.com/m04kA/SMC-SpaceBookingService/internal/infra/events"
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
	existing []*domain.Reservation
	created  []*domain.Reservation
	listErr  error
}

func (m *mockReservationRepo) ListOccupying(context.Context, int64, time.Time, time.Time) ([]*domain.Reservation, error) {
	return m.existing, m.listErr
}

func (m *mockReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	r.ID = int64(100 + len(m.created))
	m.created = append(m.created, r)
	return r, nil
}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockPublisher struct {
	types []string
	err   error
}

func (m *mockPublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	m.types = append(m.types, eventType)
	return m.err
}

type recordingMetrics struct {
	violations []string
	conflicts  []string
	created    []string
}

func (m *recordingMetrics) RecordViolation(kind string) { m.violations = append(m.violations, kind) }
func (m *recordingMetrics) RecordConflict(pricingType string) {
	m.conflicts = append(m.conflicts, pricingType)
}
func (m *recordingMetrics) RecordReservationCreated(pricingType string) {
	m.created = append(m.created, pricingType)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(d, h int) time.Time {
	return time.Date(2024, 5, d, h, 0, 0, 0, time.UTC)
}

func space() *domain.Space {
	s := &domain.Space{
		ID: 1,
		Prices: domain.PriceTable{
			domain.PricingHourly:  50,
			domain.PricingHalfDay: 120,
		},
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		s.Schedule.Days[wd] = domain.DaySchedule{IsOpen: true, OpenTime: types.TimeString("06:00"), CloseTime: types.TimeString("24:00")}
	}
	return s
}

type fixture struct {
	uc        *UseCase
	repo      *mockReservationRepo
	tx        *mockTxManager
	publisher *mockPublisher
	metrics   *recordingMetrics
}

func newFixture(existing ...*domain.Reservation) *fixture {
	f := &fixture{
		repo:      &mockReservationRepo{existing: existing},
		tx:        &mockTxManager{},
		publisher: &mockPublisher{},
		metrics:   &recordingMetrics{},
	}
	f.uc = NewUseCase(
		&mockSpaceRepo{getByIDFn: func(context.Context, int64) (*domain.Space, error) { return space(), nil }},
		f.repo,
		f.tx,
		f.publisher,
		f.metrics,
		Options{},
		nopLogger{},
	)
	return f
}

func TestExecute_CreatesPendingReservation(t *testing.T) {
	f := newFixture()
	notes := "projector please"

	resp, err := f.uc.Execute(context.Background(), &Request{
		SpaceID:     1,
		UserID:      42,
		PricingType: domain.PricingHourly,
		Params:      pricing.Params{Start: at(6, 10), End: at(6, 12).Add(30 * time.Minute)},
		Notes:       &notes,
	})
	require.NoError(t, err)

	r := resp.Reservation
	assert.Equal(t, int64(100), r.ID)
	assert.Equal(t, domain.StatusPending, r.Status)
	assert.Equal(t, int64(42), r.UserID)
	assert.Equal(t, 150.0, r.BasePrice)
	assert.Equal(t, 3, resp.Units)
	assert.Nil(t, r.Session)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{events.TypeReservationCreated}, f.publisher.types)
	assert.Equal(t, []string{"hourly"}, f.metrics.created)
}

func TestExecute_HalfDayStoresSession(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		SpaceID:     1,
		UserID:      1,
		PricingType: domain.PricingHalfDay,
		Params:      pricing.Params{Date: at(6, 0), Session: domain.SessionNight},
	})
	require.NoError(t, err)

	r := resp.Reservation
	require.NotNil(t, r.Session)
	assert.Equal(t, domain.SessionNight, *r.Session)
	assert.Equal(t, at(6, 18), r.StartAt)
	assert.Equal(t, at(7, 0), r.EndAt)
	assert.Equal(t, 120.0, r.BasePrice)
}

func TestExecute_RejectedOnOverlap(t *testing.T) {
	existing := &domain.Reservation{
		ID: 5, SpaceID: 1, PricingType: domain.PricingHourly,
		StartAt: at(6, 10), EndAt: at(6, 12), Status: domain.StatusConfirmed,
	}
	f := newFixture(existing)

	_, err := f.uc.Execute(context.Background(), &Request{
		SpaceID:     1,
		UserID:      42,
		PricingType: domain.PricingHourly,
		Params:      pricing.Params{Start: at(6, 11), End: at(6, 13)},
	})
	require.ErrorIs(t, err, ErrReservationRejected)

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	require.Len(t, rejected.Violations, 1)
	assert.Equal(t, domain.ViolationOverlap, rejected.Violations[0].Kind)
	assert.Equal(t, int64(5), rejected.Violations[0].Conflicts[0].ID)

	assert.Empty(t, f.repo.created)
	assert.Empty(t, f.publisher.types)
	assert.Equal(t, []string{"overlap"}, f.metrics.violations)
	assert.Equal(t, []string{"hourly"}, f.metrics.conflicts)
}

func TestExecute_RejectedOutsideHours(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		SpaceID:     1,
		UserID:      42,
		PricingType: domain.PricingHourly,
		Params:      pricing.Params{Start: at(6, 4), End: at(6, 7)},
	})

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, domain.ViolationOutsideHours, rejected.Violations[0].Kind)
	assert.Contains(t, err.Error(), "outside_hours")
}

func TestExecute_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), &Request{
		SpaceID:     1,
		UserID:      42,
		PricingType: domain.PricingHourly,
		Params:      pricing.Params{Start: at(6, 10), End: at(6, 11)},
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Reservation)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name:    "missing user",
			req:     &Request{SpaceID: 1, PricingType: domain.PricingHourly},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing hourly bounds",
			req:     &Request{SpaceID: 1, UserID: 1, PricingType: domain.PricingHourly},
			wantErr: ErrInvalidInput,
		},
		{
			name: "space not found",
			req:  &Request{SpaceID: 1, UserID: 1, PricingType: domain.PricingHourly},
			setup: func(f *fixture) {
				f.uc.spaceRepo = &mockSpaceRepo{getByIDFn: func(context.Context, int64) (*domain.Space, error) {
					return nil, spaceRepo.ErrSpaceNotFound
				}}
			},
			wantErr: ErrSpaceNotFound,
		},
		{
			name: "reservations unavailable",
			req: &Request{SpaceID: 1, UserID: 1, PricingType: domain.PricingHourly,
				Params: pricing.Params{Start: at(6, 10), End: at(6, 11)}},
			setup: func(f *fixture) {
				f.repo.listErr = errors.New("connection refused")
			},
			wantErr: ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.repo.created)
		})
	}
}
