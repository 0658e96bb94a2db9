package check_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, loc *time.Location, maxRangeDays int) error {
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	days := domain.DaysBetween(req.From, req.To, loc)
	if days < 0 {
		return fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	if maxRangeDays > 0 && days+1 > maxRangeDays {
		return fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidInput, days+1, maxRangeDays)
	}

	return nil
}
