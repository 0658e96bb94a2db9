// Package lifecycle периодически продвигает статусы бронирований по времени.
package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/infra/lock"
)

// LockName имя блокировки тика
const LockName = "lifecycle-tick"

// Worker запускает тик по таймеру
// Реплика, не получившая блокировку, пропускает тик
type Worker struct {
	useCase  AdvanceStatusesUseCase
	locker   Locker
	interval time.Duration
	lockTTL  time.Duration
	logger   Logger
}

// NewWorker создает воркер
// lockTTL ограничивает и время одного тика
func NewWorker(useCase AdvanceStatusesUseCase, locker Locker, interval, lockTTL time.Duration, logger Logger) *Worker {
	if lockTTL <= 0 || lockTTL > interval {
		lockTTL = interval
	}
	return &Worker{
		useCase:  useCase,
		locker:   locker,
		interval: interval,
		lockTTL:  lockTTL,
		logger:   logger,
	}
}

// Run тикает сразу и затем каждые interval до отмены ctx
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Lifecycle worker started (interval=%s, lock_ttl=%s)", w.interval, w.lockTTL)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.runOnce(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info("Lifecycle worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// runOnce возвращает true, если тик выполнен этой репликой
func (w *Worker) runOnce(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	release, err := w.locker.Acquire(ctx, LockName, w.lockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			w.logger.Info("Lifecycle tick skipped: lock is held by another replica")
		} else {
			w.logger.Warn("Lifecycle tick skipped: failed to acquire lock: %v", err)
		}
		return false
	}
	defer func() {
		// ctx может быть уже отменён, блокировку всё равно освобождаем
		if err := release(context.Background()); err != nil {
			w.logger.Warn("Lifecycle tick: failed to release lock: %v", err)
		}
	}()

	tickCtx, cancel := context.WithTimeout(ctx, w.lockTTL)
	defer cancel()

	result, err := w.useCase.Execute(tickCtx)
	if err != nil {
		w.logger.Error("Lifecycle tick failed: %v", err)
		return true
	}

	if len(result.Applied) > 0 || len(result.Failed) > 0 {
		w.logger.Info("Lifecycle tick: evaluated=%d, applied=%d, failed=%d",
			result.Evaluated, len(result.Applied), len(result.Failed))
	}
	return true
}
