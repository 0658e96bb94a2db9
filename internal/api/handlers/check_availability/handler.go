package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/check_availability"
)

const (
	msgInvalidSpaceID = "некорректный ID помещения"
	msgMissingPeriod  = "параметры from и to обязательны"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod  = "некорректный период"
	msgSpaceNotFound  = "помещение не найдено"
)

type Handler struct {
	useCase  CheckAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/availability
// Query params: from, to (required, YYYY-MM-DD, оба дня включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availability - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /spaces/{id}/availability - Missing period: space_id=%d", spaceID)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	from, err := handlers.ParseDate(fromStr, h.location)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.ParseDate(toStr, h.location)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availability - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		SpaceID: spaceID,
		From:    from,
		To:      to,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/availability - Invalid period: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, checkAvailability.ErrSpaceNotFound):
			h.logger.Warn("GET /spaces/{id}/availability - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, checkAvailability.ErrUpstreamUnavailable):
			h.logger.Error("GET /spaces/{id}/availability - Upstream unavailable: space_id=%d, error=%v", spaceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /spaces/{id}/availability - Failed to build calendar: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/availability - Calendar built: space_id=%d, days=%d, slots=%d",
		spaceID, len(result.Days), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
