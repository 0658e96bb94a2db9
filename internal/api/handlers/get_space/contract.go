package get_space

import (
	"context"

	"github.com/m04kA/SMC-SpaceBookingService/internal/service/spaces/models"
)

type SpaceService interface {
	Get(ctx context.Context, id int64) (*models.SpaceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
