package domain

import "time"

// PricingType тип тарификации бронирования
type PricingType string

const (
	PricingHourly  PricingType = "hourly"
	PricingHalfDay PricingType = "halfday"
	PricingDaily   PricingType = "daily"
	PricingMonthly PricingType = "monthly"
	PricingYearly  PricingType = "yearly"
)

// PricingTypes все типы тарификации
var PricingTypes = []PricingType{
	PricingHourly,
	PricingHalfDay,
	PricingDaily,
	PricingMonthly,
	PricingYearly,
}

// IsValid возвращает true для известного типа тарификации
func (p PricingType) IsValid() bool {
	switch p {
	case PricingHourly, PricingHalfDay, PricingDaily, PricingMonthly, PricingYearly:
		return true
	default:
		return false
	}
}

// IsHourGranular возвращает true для почасовых и полудневных бронирований,
// которые занимают конкретные часы дня
func (p PricingType) IsHourGranular() bool {
	return p == PricingHourly || p == PricingHalfDay
}

// IsFullDay возвращает true для бронирований, занимающих календарные дни целиком
func (p PricingType) IsFullDay() bool {
	return p == PricingDaily || p == PricingMonthly || p == PricingYearly
}

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusActive    ReservationStatus = "active"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// IsValid возвращает true для известного статуса
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsOccupying возвращает true для статусов, блокирующих помещение
func (s ReservationStatus) IsOccupying() bool {
	return s == StatusConfirmed || s == StatusActive
}

// IsTerminal возвращает true для конечных статусов
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// HalfDaySession фиксированное 6-часовое окно полудневного бронирования
// Окна пересекаются между собой: это альтернативы выбора, а не разбиение дня
type HalfDaySession string

const (
	SessionMorning   HalfDaySession = "morning"
	SessionAfternoon HalfDaySession = "afternoon"
	SessionDay       HalfDaySession = "day"
	SessionEvening   HalfDaySession = "evening"
	SessionNight     HalfDaySession = "night"
)

// SessionWindow часы начала и конца сессии, конец не включается
type SessionWindow struct {
	StartHour int
	EndHour   int
}

var sessionWindows = map[HalfDaySession]SessionWindow{
	SessionMorning:   {StartHour: 6, EndHour: 12},
	SessionAfternoon: {StartHour: 8, EndHour: 14},
	SessionDay:       {StartHour: 10, EndHour: 16},
	SessionEvening:   {StartHour: 12, EndHour: 18},
	SessionNight:     {StartHour: 18, EndHour: 24},
}

// Window возвращает окно сессии
func (s HalfDaySession) Window() (SessionWindow, bool) {
	w, ok := sessionWindows[s]
	return w, ok
}

// IsValid возвращает true для известной сессии
func (s HalfDaySession) IsValid() bool {
	_, ok := sessionWindows[s]
	return ok
}

// Reservation бронирование помещения
type Reservation struct {
	ID          int64
	SpaceID     int64
	UserID      int64
	PricingType PricingType
	// StartAt/EndAt - абсолютные моменты времени
	// Для посуточных, помесячных и годовых бронирований - полночь первого
	// и последнего (включительно) календарного дня
	StartAt   time.Time
	EndAt     time.Time
	Status    ReservationStatus
	BasePrice float64
	Session   *HalfDaySession
	Notes     *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window возвращает занимаемый интервал [start, end) в календаре loc
// Почасовые и полудневные занимают [StartAt, EndAt)
// Остальные занимают календарные дни от дня StartAt до дня EndAt включительно
func (r *Reservation) Window(loc *time.Location) (time.Time, time.Time) {
	if !r.PricingType.IsFullDay() {
		return r.StartAt.In(loc), r.EndAt.In(loc)
	}
	return StartOfDay(r.StartAt, loc), StartOfDay(r.EndAt, loc).AddDate(0, 0, 1)
}

// Segments возвращает занимаемые отрезки времени в календаре loc
// Полудневное бронирование на несколько дней занимает только окно сессии каждого дня
func (r *Reservation) Segments(loc *time.Location) []Interval {
	start, end := r.Window(loc)
	if r.PricingType == PricingHalfDay {
		return SessionSegments(start, end, loc)
	}
	return []Interval{{Start: start, End: end}}
}

// Touches возвращает true, если бронирование пересекается с календарным днём day
func (r *Reservation) Touches(day time.Time, loc *time.Location) bool {
	dayStart := StartOfDay(day, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	start, end := r.Window(loc)
	return start.Before(dayEnd) && end.After(dayStart)
}

// CanBeConfirmed возвращает true, если бронирование ждёт подтверждения
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanBeCancelled возвращает true, если бронирование ещё не в конечном статусе
func (r *Reservation) CanBeCancelled() bool {
	return !r.Status.IsTerminal()
}

// ReservationsFilter фильтр выборки бронирований
type ReservationsFilter struct {
	SpaceID  *int64
	UserID   *int64
	From     *time.Time // занятый интервал заканчивается после From
	To       *time.Time // занятый интервал начинается до To
	Statuses []ReservationStatus
}
