// Package lifecycle двигает статусы бронирований по времени: confirmed -> active -> completed.
package lifecycle

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// Transition переход статуса, который нужно сохранить
type Transition struct {
	ReservationID int64
	SpaceID       int64
	From          domain.ReservationStatus
	To            domain.ReservationStatus
	At            time.Time
}

// EffectiveStatus вычисляет статус бронирования на момент now
// confirmed -> active при now >= начала, active -> completed при now > конца
// pending и конечные статусы по времени не меняются
// Подтверждённое бронирование, у которого уже прошёл конец, сразу считается завершённым
func EffectiveStatus(r *domain.Reservation, now time.Time) domain.ReservationStatus {
	start, end := r.Window(now.Location())

	switch r.Status {
	case domain.StatusConfirmed:
		if now.Before(start) {
			return domain.StatusConfirmed
		}
		if now.After(end) {
			return domain.StatusCompleted
		}
		return domain.StatusActive
	case domain.StatusActive:
		if now.After(end) {
			return domain.StatusCompleted
		}
		return domain.StatusActive
	default:
		return r.Status
	}
}

// Evaluate возвращает переходы для бронирований, чей сохранённый статус отстал от времени
// Порядок переходов совпадает с порядком входного списка
func Evaluate(reservations []*domain.Reservation, now time.Time) []Transition {
	var transitions []Transition
	for _, r := range reservations {
		if r == nil {
			continue
		}
		effective := EffectiveStatus(r, now)
		if effective == r.Status {
			continue
		}
		transitions = append(transitions, Transition{
			ReservationID: r.ID,
			SpaceID:       r.SpaceID,
			From:          r.Status,
			To:            effective,
			At:            now,
		})
	}
	return transitions
}
