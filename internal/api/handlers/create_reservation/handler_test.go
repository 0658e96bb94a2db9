package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/create_reservation"
)

type mockUseCase struct {
	executeFunc func(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error)
}

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	return m.executeFunc(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, spaceID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/spaces/{spaceId}/reservations", h.Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/spaces/"+spaceID+"/reservations", strings.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

const hourlyBody = `{"pricingType":"hourly","start":"2024-05-06T10:00:00Z","end":"2024-05-06T12:00:00Z","userId":7}`

func TestHandle_Created(t *testing.T) {
	var got *createReservation.Request
	uc := &mockUseCase{executeFunc: func(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
		got = req
		return &createReservation.Response{
			Reservation: &domain.Reservation{
				ID: 10, SpaceID: req.SpaceID, UserID: req.UserID, PricingType: req.PricingType,
				StartAt: req.Params.Start, EndAt: req.Params.End, Status: domain.StatusPending, BasePrice: 50,
			},
			Units:          2,
			PriceAvailable: true,
		}, nil
	}}

	rec := serve(NewHandler(uc, time.UTC, nopLogger{}), "1", hourlyBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.SpaceID)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, domain.PricingHourly, got.PricingType)
	assert.Equal(t, time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC), got.Params.Start.UTC())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(10), body["id"])
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, float64(2), body["units"])
	assert.Equal(t, true, body["priceAvailable"])
}

func TestHandle_Rejected(t *testing.T) {
	day := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
	uc := &mockUseCase{executeFunc: func(context.Context, *createReservation.Request) (*createReservation.Response, error) {
		return nil, fmt.Errorf("tx: %w", &createReservation.RejectedError{
			Violations: []domain.Violation{
				domain.NewClosedDayViolation(day),
				domain.NewOverlapViolation([]*domain.Reservation{{ID: 3, UserID: 42}}),
			},
		})
	}}

	rec := serve(NewHandler(uc, time.UTC, nopLogger{}), "1", hourlyBody)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error   string `json:"error"`
		Details []struct {
			Kind                   string  `json:"kind"`
			Day                    *string `json:"day"`
			ConflictReservationIDs []int64 `json:"conflictReservationIds"`
			Conflicts              []struct {
				ReservationID int64 `json:"reservationId"`
				UserID        int64 `json:"userId"`
			} `json:"conflicts"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Details, 2)
	assert.Equal(t, "closed_day", body.Details[0].Kind)
	require.NotNil(t, body.Details[0].Day)
	assert.Equal(t, "2024-05-04", *body.Details[0].Day)
	assert.Equal(t, "overlap", body.Details[1].Kind)
	assert.Equal(t, []int64{3}, body.Details[1].ConflictReservationIDs)
	require.Len(t, body.Details[1].Conflicts, 1)
	assert.Equal(t, int64(3), body.Details[1].Conflicts[0].ReservationID)
	assert.Equal(t, int64(42), body.Details[1].Conflicts[0].UserID)
	assert.Empty(t, body.Details[0].Conflicts)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		spaceID string
		body    string
		err     error
		want    int
	}{
		{name: "bad space id", spaceID: "x", body: hourlyBody, want: http.StatusBadRequest},
		{name: "bad body", spaceID: "1", body: `{"pricingType":`, want: http.StatusBadRequest},
		{name: "bad date", spaceID: "1", body: `{"pricingType":"daily","start":"tomorrow","userId":7}`, want: http.StatusBadRequest},
		{name: "invalid input", spaceID: "1", body: hourlyBody, err: createReservation.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "space not found", spaceID: "1", body: hourlyBody, err: createReservation.ErrSpaceNotFound, want: http.StatusNotFound},
		{name: "upstream", spaceID: "1", body: hourlyBody, err: fmt.Errorf("%w: db down", createReservation.ErrUpstreamUnavailable), want: http.StatusServiceUnavailable},
		{name: "unexpected", spaceID: "1", body: hourlyBody, err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{executeFunc: func(context.Context, *createReservation.Request) (*createReservation.Response, error) {
				return nil, tt.err
			}}
			rec := serve(NewHandler(uc, time.UTC, nopLogger{}), tt.spaceID, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
