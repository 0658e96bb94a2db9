package run_lifecycle_tick

import (
	"context"

	advanceStatuses "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/advance_statuses"
)

type AdvanceStatusesUseCase interface {
	Execute(ctx context.Context) (*advanceStatuses.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
