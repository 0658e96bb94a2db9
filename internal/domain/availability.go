package domain

import "time"

// AvailabilityDay запись календаря доступности на один день
type AvailabilityDay struct {
	Date         time.Time // полночь дня
	Reservations []*Reservation
	// Available = false, если день занят бронированием на весь день
	// или почасовые бронирования покрывают порог занятых часов
	Available   bool
	BookedHours int
	// Open - результат проверки расписания работы на этот день
	Open bool
}

// BookedSlot занятый час дня, получаемый из почасовых и полудневных бронирований
type BookedSlot struct {
	SpaceID        int64
	Date           time.Time
	Hour           int
	ReservationIDs []int64
}
