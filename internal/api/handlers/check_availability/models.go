package check_availability

import (
	"strings"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SpaceID int64          `json:"spaceId"`
	From    string         `json:"from"` // "2024-05-06"
	To      string         `json:"to"`
	Days    []DayResponse  `json:"days"`
	Slots   []SlotResponse `json:"slots"`
}

// DayResponse день календаря
type DayResponse struct {
	Date           string  `json:"date"`
	Weekday        string  `json:"weekday"`
	Open           bool    `json:"open"`
	Available      bool    `json:"available"`
	BookedHours    int     `json:"bookedHours"`
	ReservationIDs []int64 `json:"reservationIds"`
}

// SlotResponse занятый час
type SlotResponse struct {
	Date           string  `json:"date"`
	Hour           int     `json:"hour"`
	ReservationIDs []int64 `json:"reservationIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		SpaceID: resp.SpaceID,
		From:    resp.From.Format(domain.DateFormat),
		To:      resp.To.Format(domain.DateFormat),
		Days:    make([]DayResponse, 0, len(resp.Days)),
		Slots:   make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, d := range resp.Days {
		ids := make([]int64, 0, len(d.Reservations))
		for _, r := range d.Reservations {
			ids = append(ids, r.ID)
		}
		result.Days = append(result.Days, DayResponse{
			Date:           d.Date.Format(domain.DateFormat),
			Weekday:        strings.ToLower(d.Date.Weekday().String()),
			Open:           d.Open,
			Available:      d.Available,
			BookedHours:    d.BookedHours,
			ReservationIDs: ids,
		})
	}

	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			Date:           s.Date.Format(domain.DateFormat),
			Hour:           s.Hour,
			ReservationIDs: s.ReservationIDs,
		})
	}

	return result
}
