package domain

import (
	"fmt"
	"time"
)

// ViolationKind тип нарушения при проверке кандидата
type ViolationKind string

const (
	ViolationClosedDay    ViolationKind = "closed_day"
	ViolationOutsideHours ViolationKind = "outside_hours"
	ViolationOverlap      ViolationKind = "overlap"
)

// Violation структурированная причина, по которой бронирование невозможно
// Не является ошибкой: вызывающая сторона решает, как её показывать
type Violation struct {
	Kind      ViolationKind
	Day       time.Time
	DayLabel  string         // ClosedDay: название дня недели
	Window    string         // OutsideHours: окно работы "HH:MM–HH:MM"
	Conflicts []*Reservation // Overlap: пересекающиеся бронирования по возрастанию начала
	Message   string
}

// NewClosedDayViolation помещение закрыто в этот день
func NewClosedDayViolation(day time.Time) Violation {
	label := day.Weekday().String()
	return Violation{
		Kind:     ViolationClosedDay,
		Day:      day,
		DayLabel: label,
		Message:  fmt.Sprintf("space is closed on %s (%s)", label, day.Format(DateFormat)),
	}
}

// NewOutsideHoursViolation момент вне окна работы
func NewOutsideHoursViolation(day time.Time, window string) Violation {
	return Violation{
		Kind:    ViolationOutsideHours,
		Day:     day,
		Window:  window,
		Message: fmt.Sprintf("outside operating window %s on %s", window, day.Format(DateFormat)),
	}
}

// NewOverlapViolation пересечение с существующими бронированиями
func NewOverlapViolation(conflicts []*Reservation) Violation {
	ids := make([]int64, len(conflicts))
	for i, r := range conflicts {
		ids[i] = r.ID
	}
	return Violation{
		Kind:      ViolationOverlap,
		Conflicts: conflicts,
		Message:   fmt.Sprintf("overlaps with existing reservations %v", ids),
	}
}

// String реализует fmt.Stringer
func (v Violation) String() string {
	return string(v.Kind) + ": " + v.Message
}
