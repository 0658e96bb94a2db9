package lifecycle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/infra/lock"
	advanceStatuses "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/advance_statuses"
)

type countingUseCase struct {
	calls    atomic.Int32
	err      error
	deadline bool
}

func (u *countingUseCase) Execute(ctx context.Context) (*advanceStatuses.Response, error) {
	u.calls.Add(1)
	_, u.deadline = ctx.Deadline()
	if u.err != nil {
		return nil, u.err
	}
	return &advanceStatuses.Response{At: time.Now()}, nil
}

type fakeLocker struct {
	mu       sync.Mutex
	err      error
	acquired int
	released int
	names    []string
}

func (l *fakeLocker) Acquire(_ context.Context, name string, _ time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.acquired++
	l.names = append(l.names, name)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
		return nil
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestRunOnce_HoldsLockForTick(t *testing.T) {
	uc := &countingUseCase{}
	locker := &fakeLocker{}
	w := NewWorker(uc, locker, time.Minute, 20*time.Second, nopLogger{})

	assert.True(t, w.runOnce(context.Background()))
	assert.Equal(t, int32(1), uc.calls.Load())
	assert.True(t, uc.deadline)
	assert.Equal(t, 1, locker.acquired)
	assert.Equal(t, 1, locker.released)
	assert.Equal(t, []string{LockName}, locker.names)
}

func TestRunOnce_SkipsWhenLockHeld(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "held by another replica", err: lock.ErrNotAcquired},
		{name: "redis down", err: lock.ErrRedis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &countingUseCase{}
			w := NewWorker(uc, &fakeLocker{err: tt.err}, time.Minute, time.Second, nopLogger{})

			assert.False(t, w.runOnce(context.Background()))
			assert.Zero(t, uc.calls.Load())
		})
	}
}

func TestRunOnce_ReleasesLockOnFailure(t *testing.T) {
	uc := &countingUseCase{err: errors.New("db down")}
	locker := &fakeLocker{}
	w := NewWorker(uc, locker, time.Minute, time.Second, nopLogger{})

	assert.True(t, w.runOnce(context.Background()))
	assert.Equal(t, 1, locker.released)
}

func TestNewWorker_LockTTLBoundedByInterval(t *testing.T) {
	w := NewWorker(&countingUseCase{}, lock.NoopLocker{}, 10*time.Second, time.Minute, nopLogger{})
	assert.Equal(t, 10*time.Second, w.lockTTL)

	w = NewWorker(&countingUseCase{}, lock.NoopLocker{}, 10*time.Second, 0, nopLogger{})
	assert.Equal(t, 10*time.Second, w.lockTTL)
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	uc := &countingUseCase{}
	w := NewWorker(uc, lock.NoopLocker{}, 5*time.Millisecond, 5*time.Millisecond, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return uc.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
