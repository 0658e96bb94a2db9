package spaces

import (
	"context"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// SpaceRepository интерфейс репозитория помещений
type SpaceRepository interface {
	Create(ctx context.Context, space *domain.Space) (*domain.Space, error)
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
	Update(ctx context.Context, space *domain.Space) (*domain.Space, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
