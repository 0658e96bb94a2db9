package reservation

import "github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"

// DBExecutor переиспользуем интерфейс из dbmetrics: *dbmetrics.DB или транзакция из контекста
type DBExecutor = dbmetrics.DBExecutor
