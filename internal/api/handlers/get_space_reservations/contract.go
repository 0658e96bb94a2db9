package get_space_reservations

import (
	"context"

	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	ListBySpace(ctx context.Context, req *models.ListSpaceReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
