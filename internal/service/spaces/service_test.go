package spaces

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	spaceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/space"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/spaces/models"
)

type mockSpaceRepo struct {
	spaces    map[int64]*domain.Space
	createErr error
}

func (m *mockSpaceRepo) Create(_ context.Context, s *domain.Space) (*domain.Space, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	s.ID = int64(len(m.spaces) + 1)
	m.spaces[s.ID] = s
	return s, nil
}

func (m *mockSpaceRepo) GetByID(_ context.Context, id int64) (*domain.Space, error) {
	s, ok := m.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	return s, nil
}

func (m *mockSpaceRepo) Update(_ context.Context, s *domain.Space) (*domain.Space, error) {
	m.spaces[s.ID] = s
	return s, nil
}

type mockTxManager struct{}

func (mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(t *testing.T) (*Service, *mockSpaceRepo) {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	repo := &mockSpaceRepo{spaces: map[int64]*domain.Space{}}
	return NewService(repo, mockTxManager{}, v, nopLogger{}), repo
}

func validRequest() *models.SpaceRequest {
	return &models.SpaceRequest{
		Name: "Meeting room A",
		Schedule: []models.DayScheduleRequest{
			{Weekday: "monday", IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
			{Weekday: "friday", IsOpen: true, OpenTime: "12:00", CloseTime: "24:00"},
			{Weekday: "sunday", IsOpen: false},
		},
		Prices: map[string]float64{"hourly": 25, "daily": 150, "monthly": 0},
	}
}

func TestCreate(t *testing.T) {
	svc, repo := newService(t)

	resp, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	require.Len(t, resp.Schedule, 7)
	assert.Equal(t, "sunday", resp.Schedule[0].Weekday)
	assert.False(t, resp.Schedule[0].IsOpen)
	assert.Equal(t, "monday", resp.Schedule[1].Weekday)
	assert.Equal(t, "09:00", resp.Schedule[1].OpenTime)
	assert.Equal(t, "24:00", resp.Schedule[5].CloseTime)
	assert.False(t, resp.Schedule[2].IsOpen)
	assert.Equal(t, map[string]float64{"hourly": 25, "daily": 150}, resp.Prices)

	stored := repo.spaces[1]
	rate, ok := stored.Prices.Rate(domain.PricingMonthly)
	assert.False(t, ok)
	assert.Zero(t, rate)
}

func TestCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.SpaceRequest)
		field  string
	}{
		{name: "empty name", mutate: func(r *models.SpaceRequest) { r.Name = "" }, field: "Name"},
		{name: "unknown weekday", mutate: func(r *models.SpaceRequest) { r.Schedule[0].Weekday = "funday" }, field: "Weekday"},
		{name: "bad time format", mutate: func(r *models.SpaceRequest) { r.Schedule[0].OpenTime = "9am" }, field: "OpenTime"},
		{name: "close before open", mutate: func(r *models.SpaceRequest) { r.Schedule[0].CloseTime = "08:00" }, field: "CloseTime"},
		{name: "open day without hours", mutate: func(r *models.SpaceRequest) { r.Schedule[0].CloseTime = "" }, field: "CloseTime"},
		{name: "duplicate weekday", mutate: func(r *models.SpaceRequest) { r.Schedule[1].Weekday = "monday" }, field: "Schedule"},
		{name: "unknown pricing type", mutate: func(r *models.SpaceRequest) { r.Prices["weekly"] = 10 }, field: "Prices"},
		{name: "negative rate", mutate: func(r *models.SpaceRequest) { r.Prices["hourly"] = -1 }, field: "Prices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			req := validRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.NotEmpty(t, verrs)
			assert.Contains(t, verrs[0].Field, tt.field)
			assert.Empty(t, repo.spaces)
		})
	}
}

func TestCreate_RepositoryError(t *testing.T) {
	svc, repo := newService(t)
	repo.createErr = errors.New("connection refused")

	_, err := svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestGetAndUpdate(t *testing.T) {
	svc, _ := newService(t)
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.AlwaysOpen = true
	req.Prices = map[string]float64{"halfday": 80}

	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.True(t, updated.AlwaysOpen)
	assert.Equal(t, map[string]float64{"halfday": 80}, updated.Prices)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Prices, got.Prices)

	_, err = svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSpaceNotFound)

	_, err = svc.Update(context.Background(), 42, validRequest())
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}
