package run_lifecycle_tick

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/lifecycle"
	advanceStatuses "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/advance_statuses"
)

// TickResponse HTTP response model
type TickResponse struct {
	At        time.Time            `json:"at"`
	Evaluated int                  `json:"evaluated"`
	Applied   []TransitionResponse `json:"applied"`
	Failed    []TransitionResponse `json:"failed"`
}

// TransitionResponse переход статуса
type TransitionResponse struct {
	ReservationID int64  `json:"reservationId"`
	SpaceID       int64  `json:"spaceId"`
	From          string `json:"from"`
	To            string `json:"to"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *advanceStatuses.Response) *TickResponse {
	return &TickResponse{
		At:        resp.At,
		Evaluated: resp.Evaluated,
		Applied:   fromTransitions(resp.Applied),
		Failed:    fromTransitions(resp.Failed),
	}
}

func fromTransitions(transitions []lifecycle.Transition) []TransitionResponse {
	result := make([]TransitionResponse, 0, len(transitions))
	for _, t := range transitions {
		result = append(result, TransitionResponse{
			ReservationID: t.ReservationID,
			SpaceID:       t.SpaceID,
			From:          string(t.From),
			To:            string(t.To),
		})
	}
	return result
}
