package update_space

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/spaces"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/spaces/models"
)

const (
	msgInvalidSpaceID     = "некорректный ID помещения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные помещения"
	msgNotFound           = "помещение не найдено"
)

type Handler struct {
	service SpaceService
	logger  Logger
}

func NewHandler(service SpaceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/spaces/{spaceId}
// Расписание и прайс заменяются целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("PUT /spaces/{id} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	var req models.SpaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /spaces/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	space, err := h.service.Update(r.Context(), spaceID, &req)
	if err != nil {
		var validationErrs spaces.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			h.logger.Warn("PUT /spaces/{id} - Validation failed: space_id=%d, error=%v", spaceID, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, validationErrs)

		case errors.Is(err, spaces.ErrInvalidInput):
			h.logger.Warn("PUT /spaces/{id} - Invalid input: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		case errors.Is(err, spaces.ErrSpaceNotFound):
			h.logger.Warn("PUT /spaces/{id} - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, spaces.ErrUpstreamUnavailable):
			h.logger.Error("PUT /spaces/{id} - Upstream unavailable: space_id=%d, error=%v", spaceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /spaces/{id} - Failed to update space: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /spaces/{id} - Space updated: space_id=%d", spaceID)
	handlers.RespondJSON(w, http.StatusOK, space)
}
