package create_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidSpaceID     = "некорректный ID помещения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD или RFC3339"
	msgInvalidCandidate   = "некорректные параметры бронирования"
	msgSpaceNotFound      = "помещение не найдено"
	msgRejected           = "выбранное время недоступно"
)

type Handler struct {
	useCase  CreateReservationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateReservationUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/spaces/{spaceId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("POST /spaces/{id}/reservations - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /spaces/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(spaceID, h.location)
	if err != nil {
		h.logger.Warn("POST /spaces/{id}/reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rejected *createReservation.RejectedError
		switch {
		case errors.As(err, &rejected):
			h.logger.Warn("POST /spaces/{id}/reservations - Rejected: space_id=%d, user_id=%d, violations=%d",
				spaceID, req.UserID, len(rejected.Violations))
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgRejected, models.FromDomainViolations(rejected.Violations))

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /spaces/{id}/reservations - Invalid candidate: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidCandidate)

		case errors.Is(err, createReservation.ErrSpaceNotFound):
			h.logger.Warn("POST /spaces/{id}/reservations - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, createReservation.ErrUpstreamUnavailable):
			h.logger.Error("POST /spaces/{id}/reservations - Upstream unavailable: space_id=%d, error=%v", spaceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /spaces/{id}/reservations - Failed to create reservation: space_id=%d, user_id=%d, error=%v",
				spaceID, req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /spaces/{id}/reservations - Reservation created: reservation_id=%d, space_id=%d, user_id=%d",
		result.Reservation.ID, spaceID, req.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, time.Now().In(h.location)))
}
