package validate_candidate

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if !req.PricingType.IsValid() {
		return fmt.Errorf("%w: unknown pricing type %q", ErrInvalidInput, req.PricingType)
	}

	return nil
}
