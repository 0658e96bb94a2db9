package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	handlers.CandidateRequest
	UserID int64   `json:"userId"`
	Notes  *string `json:"notes,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	*models.ReservationResponse
	Units          int  `json:"units"`
	PriceAvailable bool `json:"priceAvailable"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(spaceID int64, loc *time.Location) (*createReservation.Request, error) {
	pricingType, params, err := r.ToParams(loc)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		SpaceID:     spaceID,
		UserID:      r.UserID,
		PricingType: pricingType,
		Params:      params,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response, now time.Time) *CreateReservationResponse {
	return &CreateReservationResponse{
		ReservationResponse: models.FromDomainReservation(resp.Reservation, now),
		Units:               resp.Units,
		PriceAvailable:      resp.PriceAvailable,
	}
}
