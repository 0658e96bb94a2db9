package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/lifecycle"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// ListSpaceReservationsRequest запрос бронирований помещения
type ListSpaceReservationsRequest struct {
	SpaceID int64      `json:"spaceId"`
	From    *time.Time `json:"from,omitempty"`   // первый день периода (опционально)
	To      *time.Time `json:"to,omitempty"`     // последний день периода включительно (опционально)
	Status  *string    `json:"status,omitempty"` // фильтр по сохранённому статусу
}

// ListUserReservationsRequest запрос бронирований пользователя
type ListUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64     `json:"id"`
	SpaceID     int64     `json:"spaceId"`
	UserID      int64     `json:"userId"`
	PricingType string    `json:"pricingType"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	StartDate   string    `json:"startDate"` // "2024-05-06", первый день в календаре сервиса
	EndDate     string    `json:"endDate"`   // последний день включительно
	Session     *string   `json:"session,omitempty"`
	// Status сохранённый статус, EffectiveStatus - статус на момент ответа
	Status          string  `json:"status"`
	EffectiveStatus string  `json:"effectiveStatus"`
	BasePrice       float64 `json:"basePrice"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// ViolationResponse причина отказа в бронировании
type ViolationResponse struct {
	Kind                   string  `json:"kind"`
	Day                    *string `json:"day,omitempty"`
	Weekday                string  `json:"weekday,omitempty"`
	Window                 string  `json:"window,omitempty"`
	ConflictReservationIDs []int64 `json:"conflictReservationIds,omitempty"`
	// Conflicts занявшие помещение бронирования вместе с владельцами
	Conflicts []ConflictResponse `json:"conflicts,omitempty"`
	Message   string             `json:"message"`
}

// ConflictResponse пересекающееся бронирование
type ConflictResponse struct {
	ReservationID int64     `json:"reservationId"`
	UserID        int64     `json:"userId"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
// now задаёт момент и календарь, в котором вычисляется EffectiveStatus
func FromDomainReservation(r *domain.Reservation, now time.Time) *ReservationResponse {
	if r == nil {
		return nil
	}

	loc := now.Location()
	lastDay := r.EndAt
	if !r.PricingType.IsFullDay() && r.EndAt.After(r.StartAt) {
		// конец почасового интервала не включается
		lastDay = r.EndAt.Add(-time.Nanosecond)
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		SpaceID:            r.SpaceID,
		UserID:             r.UserID,
		PricingType:        string(r.PricingType),
		StartAt:            r.StartAt.In(loc),
		EndAt:              r.EndAt.In(loc),
		StartDate:          r.StartAt.In(loc).Format(domain.DateFormat),
		EndDate:            lastDay.In(loc).Format(domain.DateFormat),
		Status:             string(r.Status),
		EffectiveStatus:    string(lifecycle.EffectiveStatus(r, now)),
		BasePrice:          r.BasePrice,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.Session != nil {
		resp.Session = ptr.Ptr(string(*r.Session))
	}

	if r.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(r.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(reservations []*domain.Reservation, now time.Time) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		if dto := FromDomainReservation(r, now); dto != nil {
			resp.Reservations = append(resp.Reservations, *dto)
		}
	}
	return resp
}

// FromDomainViolations конвертирует нарушения в DTO
func FromDomainViolations(violations []domain.Violation) []ViolationResponse {
	resp := make([]ViolationResponse, 0, len(violations))
	for _, v := range violations {
		dto := ViolationResponse{
			Kind:    string(v.Kind),
			Weekday: v.DayLabel,
			Window:  v.Window,
			Message: v.Message,
		}
		if !v.Day.IsZero() {
			dto.Day = ptr.Ptr(v.Day.Format(domain.DateFormat))
		}
		for _, c := range v.Conflicts {
			dto.ConflictReservationIDs = append(dto.ConflictReservationIDs, c.ID)
			dto.Conflicts = append(dto.Conflicts, ConflictResponse{
				ReservationID: c.ID,
				UserID:        c.UserID,
				StartAt:       c.StartAt,
				EndAt:         c.EndAt,
			})
		}
		resp = append(resp, dto)
	}
	return resp
}

// ToDomainReservationStatus конвертирует строку в статус
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
