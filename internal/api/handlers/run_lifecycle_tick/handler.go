package run_lifecycle_tick

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	advanceStatuses "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/advance_statuses"
)

type Handler struct {
	useCase AdvanceStatusesUseCase
	logger  Logger
}

func NewHandler(useCase AdvanceStatusesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/lifecycle/tick
// Внеочередной тик жизненного цикла, тики с воркером выполняются по очереди
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		if errors.Is(err, advanceStatuses.ErrUpstreamUnavailable) {
			h.logger.Error("POST /lifecycle/tick - Upstream unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("POST /lifecycle/tick - Tick failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /lifecycle/tick - Tick done: evaluated=%d, applied=%d, failed=%d",
		result.Evaluated, len(result.Applied), len(result.Failed))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
