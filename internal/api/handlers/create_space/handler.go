package create_space

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/spaces"
	"github.com/m04kA/SMC-SpaceBookingService/internal/service/spaces/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные помещения"
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

// Handle POST /api/v1/spaces
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SpaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /spaces - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	space, err := h.service.Create(r.Context(), &req)
	if err != nil {
		var validationErrs spaces.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			h.logger.Warn("POST /spaces - Validation failed: %v", err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, validationErrs)

		case errors.Is(err, spaces.ErrInvalidInput):
			h.logger.Warn("POST /spaces - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		case errors.Is(err, spaces.ErrUpstreamUnavailable):
			h.logger.Error("POST /spaces - Upstream unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /spaces - Failed to create space: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /spaces - Space created: space_id=%d", space.ID)
	handlers.RespondJSON(w, http.StatusCreated, space)
}
