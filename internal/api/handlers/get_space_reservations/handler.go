package get_space_reservations

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations"
)

const (
	msgInvalidSpaceID = "некорректный ID помещения"
	msgInvalidParams  = "некорректные параметры запроса"
)

type Handler struct {
	service  ReservationService
	location *time.Location
	logger   Logger
}

func NewHandler(service ReservationService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/reservations
// Query params: from, to (optional, YYYY-MM-DD), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/reservations - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(spaceID, query.Get("from"), query.Get("to"), query.Get("status"), h.location)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/reservations - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListBySpace(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/reservations - Invalid filter: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, reservations.ErrUpstreamUnavailable):
			h.logger.Error("GET /spaces/{id}/reservations - Upstream unavailable: space_id=%d, error=%v", spaceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /spaces/{id}/reservations - Failed to list: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/reservations - Reservations retrieved: space_id=%d, count=%d",
		spaceID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
