package lifecycle

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

type guardKey struct {
	id int64
	to domain.ReservationStatus
}

// Guard не даёт повторно выдавать один и тот же переход, пока список бронирований
// не перечитан из хранилища. Неудачная запись перехода снимается через Forget,
// и переход снова выдаётся на следующем цикле.
//
// Guard принадлежит одному потребителю (одному воркеру), общего состояния между ними нет.
type Guard struct {
	mu      sync.Mutex
	emitted map[guardKey]time.Time
}

// NewGuard создает пустой Guard
func NewGuard() *Guard {
	return &Guard{emitted: make(map[guardKey]time.Time)}
}

// Tick вычисляет переходы на момент now и возвращает только ещё не выданные
func (g *Guard) Tick(reservations []*domain.Reservation, now time.Time) []Transition {
	candidates := Evaluate(reservations, now)

	g.mu.Lock()
	defer g.mu.Unlock()

	fresh := make([]Transition, 0, len(candidates))
	for _, t := range candidates {
		key := guardKey{id: t.ReservationID, to: t.To}
		if _, ok := g.emitted[key]; ok {
			continue
		}
		g.emitted[key] = now
		fresh = append(fresh, t)
	}
	return fresh
}

// Forget снимает отметку с перехода, запись которого не удалась
func (g *Guard) Forget(t Transition) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.emitted, guardKey{id: t.ReservationID, to: t.To})
}

// Reconcile сверяет отметки со свежим снимком бронирований
// Отметка удаляется, если переход уже сохранён или бронирования больше нет в снимке
// Возвращает количество удалённых отметок
func (g *Guard) Reconcile(snapshot []*domain.Reservation) int {
	current := make(map[int64]domain.ReservationStatus, len(snapshot))
	for _, r := range snapshot {
		if r != nil {
			current[r.ID] = r.Status
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for key := range g.emitted {
		status, ok := current[key.id]
		if !ok || status == key.to {
			delete(g.emitted, key)
			removed++
		}
	}
	return removed
}

// Invalidate сбрасывает все отметки
func (g *Guard) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.emitted = make(map[guardKey]time.Time)
}

// Seen возвращает true, если переход уже выдан
func (g *Guard) Seen(reservationID int64, to domain.ReservationStatus) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.emitted[guardKey{id: reservationID, to: to}]
	return ok
}

// Len количество выданных и не сброшенных переходов
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.emitted)
}
