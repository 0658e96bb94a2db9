package confirm_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgSpaceNotFound        = "помещение не найдено"
	msgCannotConfirm        = "бронирование не ожидает подтверждения"
	msgConflict             = "время уже занято подтверждённым бронированием"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	reservation, err := h.service.Confirm(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrSpaceNotFound):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Space not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, reservations.ErrCannotConfirm):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Cannot confirm: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgCannotConfirm)

		case errors.Is(err, reservations.ErrConflict):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Overlap: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, reservations.ErrUpstreamUnavailable):
			h.logger.Error("PATCH /reservations/{id}/confirm - Upstream unavailable: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /reservations/{id}/confirm - Failed to confirm: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/confirm - Reservation confirmed: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
