package validate_candidate

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	validateCandidate "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/validate_candidate"
)

const (
	msgInvalidSpaceID     = "некорректный ID помещения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD или RFC3339"
	msgInvalidCandidate   = "некорректные параметры бронирования"
	msgSpaceNotFound      = "помещение не найдено"
)

type Handler struct {
	useCase  ValidateCandidateUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ValidateCandidateUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/spaces/{spaceId}/reservations/validate
// Нарушения расписания и пересечения возвращаются с кодом 200 и valid=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("POST /spaces/{id}/reservations/validate - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	var req handlers.CandidateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /spaces/{id}/reservations/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pricingType, params, err := req.ToParams(h.location)
	if err != nil {
		h.logger.Warn("POST /spaces/{id}/reservations/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &validateCandidate.Request{
		SpaceID:     spaceID,
		PricingType: pricingType,
		Params:      params,
	})
	if err != nil {
		switch {
		case errors.Is(err, validateCandidate.ErrInvalidInput):
			h.logger.Warn("POST /spaces/{id}/reservations/validate - Invalid candidate: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidCandidate)

		case errors.Is(err, validateCandidate.ErrSpaceNotFound):
			h.logger.Warn("POST /spaces/{id}/reservations/validate - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, validateCandidate.ErrUpstreamUnavailable):
			h.logger.Error("POST /spaces/{id}/reservations/validate - Upstream unavailable: space_id=%d, error=%v", spaceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /spaces/{id}/reservations/validate - Failed to validate: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /spaces/{id}/reservations/validate - Candidate checked: space_id=%d, valid=%t, violations=%d",
		spaceID, result.Valid, len(result.Violations))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
