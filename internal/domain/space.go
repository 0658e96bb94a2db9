package domain

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// DaysPerWeek количество дней в недельном расписании
const DaysPerWeek = 7

// Space бронируемое помещение
type Space struct {
	ID       int64
	Name     string
	Prices   PriceTable
	Schedule OperationalSchedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceTable ставки за единицу для каждого типа тарификации
type PriceTable map[PricingType]float64

// Rate возвращает ставку и признак её наличия
// Нулевая или отрицательная ставка считается отсутствующей
func (p PriceTable) Rate(pricingType PricingType) (float64, bool) {
	rate, ok := p[pricingType]
	if !ok || rate <= 0 {
		return 0, false
	}
	return rate, true
}

// OperationalSchedule недельное расписание работы помещения
// Days индексируется по time.Weekday: 0 - воскресенье, 6 - суббота
type OperationalSchedule struct {
	AlwaysOpen bool
	Days       [DaysPerWeek]DaySchedule
}

// Day возвращает расписание на день недели
func (s OperationalSchedule) Day(weekday time.Weekday) DaySchedule {
	if weekday < time.Sunday || weekday > time.Saturday {
		return DaySchedule{IsOpen: false}
	}
	return s.Days[weekday]
}

// DaySchedule расписание одного дня недели
// Если IsOpen = false, OpenTime и CloseTime игнорируются
type DaySchedule struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// HasValidWindow возвращает true, если день открыт и окно работы корректно
func (d DaySchedule) HasValidWindow() bool {
	if !d.IsOpen || d.OpenTime.IsZero() || d.CloseTime.IsZero() {
		return false
	}
	open, closeAt := d.OpenTime.Minutes(), d.CloseTime.Minutes()
	return open >= 0 && closeAt > open
}

// WindowLabel возвращает окно работы в виде "HH:MM–HH:MM"
func (d DaySchedule) WindowLabel() string {
	return d.OpenTime.String() + "–" + d.CloseTime.String()
}
