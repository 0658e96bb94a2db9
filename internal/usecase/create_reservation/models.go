package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/pricing"
)

// Options параметры use case
type Options struct {
	FullyBookedHours int
	Location         *time.Location
}

// Request модель запроса на создание бронирования
type Request struct {
	SpaceID     int64
	UserID      int64 // кто бронирует
	PricingType domain.PricingType
	Params      pricing.Params
	Notes       *string
}

// Response созданное бронирование
type Response struct {
	Reservation    *domain.Reservation
	Units          int
	PriceAvailable bool
}
