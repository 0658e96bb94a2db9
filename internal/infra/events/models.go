package events

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

// Типы событий, они же routing key в topic exchange
const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationConfirmed = "reservation.confirmed"
	TypeReservationCancelled = "reservation.cancelled"
	TypeStatusChanged        = "reservation.status_changed"
)

// Envelope конверт события
type Envelope struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// ReservationPayload снимок бронирования в событии
type ReservationPayload struct {
	ReservationID int64                    `json:"reservation_id"`
	SpaceID       int64                    `json:"space_id"`
	UserID        int64                    `json:"user_id"`
	PricingType   domain.PricingType       `json:"pricing_type"`
	StartAt       time.Time                `json:"start_at"`
	EndAt         time.Time                `json:"end_at"`
	Status        domain.ReservationStatus `json:"status"`
	BasePrice     float64                  `json:"base_price"`
}

// StatusChangedPayload автоматический переход статуса
type StatusChangedPayload struct {
	ReservationID int64                    `json:"reservation_id"`
	SpaceID       int64                    `json:"space_id"`
	From          domain.ReservationStatus `json:"from"`
	To            domain.ReservationStatus `json:"to"`
	At            time.Time                `json:"at"`
}

// NewReservationPayload собирает payload из бронирования
func NewReservationPayload(r *domain.Reservation) ReservationPayload {
	return ReservationPayload{
		ReservationID: r.ID,
		SpaceID:       r.SpaceID,
		UserID:        r.UserID,
		PricingType:   r.PricingType,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		Status:        r.Status,
		BasePrice:     r.BasePrice,
	}
}
