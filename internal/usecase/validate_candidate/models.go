package validate_candidate

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

// Request кандидат на бронирование
type Request struct {
	SpaceID     int64
	PricingType domain.PricingType
	Params      pricing.Params
}

// Response результат проверки кандидата
// Valid = false не ошибка: причины перечислены в Violations
type Response struct {
	Valid          bool
	Violations     []domain.Violation
	Start          time.Time
	End            time.Time
	Units          int
	BasePrice      float64
	PriceAvailable bool
}
