package lifecycle

import (
	"context"
	"time"

	advanceStatuses "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/advance_statuses"
)

// AdvanceStatusesUseCase один тик жизненного цикла
type AdvanceStatusesUseCase interface {
	Execute(ctx context.Context) (*advanceStatuses.Response, error)
}

// Locker блокировка, разрешающая тикать одной реплике
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
