package validate_candidate

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
	validateCandidate "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/validate_candidate"
)

// ValidationResponse HTTP response model
type ValidationResponse struct {
	Valid          bool                       `json:"valid"`
	StartAt        time.Time                  `json:"startAt"`
	EndAt          time.Time                  `json:"endAt"`
	Units          int                        `json:"units"`
	BasePrice      float64                    `json:"basePrice"`
	PriceAvailable bool                       `json:"priceAvailable"`
	Violations     []models.ViolationResponse `json:"violations"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateCandidate.Response) *ValidationResponse {
	return &ValidationResponse{
		Valid:          resp.Valid,
		StartAt:        resp.Start,
		EndAt:          resp.End,
		Units:          resp.Units,
		BasePrice:      resp.BasePrice,
		PriceAvailable: resp.PriceAvailable,
		Violations:     models.FromDomainViolations(resp.Violations),
	}
}
