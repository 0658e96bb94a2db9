package get_space_reservations

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	spaceID int64,
	fromStr string,
	toStr string,
	statusStr string,
	loc *time.Location,
) (*models.ListSpaceReservationsRequest, error) {
	req := &models.ListSpaceReservationsRequest{
		SpaceID: spaceID,
	}

	if fromStr != "" {
		from, err := handlers.ParseDate(fromStr, loc)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := handlers.ParseDate(toStr, loc)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
