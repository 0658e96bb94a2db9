// Package hours проверяет попадание моментов и дат в недельное расписание работы помещения.
//
// Политику применения (какие типы тарификации проверяются и как) определяет
// вызывающая сторона, см. пакет evaluation. Здесь только факты о расписании.
package hours

import (
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// IsOpenOnDay возвращает true, если помещение работает в календарный день day
func IsOpenOnDay(schedule domain.OperationalSchedule, day time.Time) bool {
	if schedule.AlwaysOpen {
		return true
	}
	return schedule.Day(day.Weekday()).IsOpen
}

// IsOpenAt возвращает true, если момент instant попадает в окно работы своего дня
// Окно полуоткрытое: openTime <= t < closeTime, ровно closeTime - уже закрыто
func IsOpenAt(schedule domain.OperationalSchedule, instant time.Time) bool {
	if schedule.AlwaysOpen {
		return true
	}

	day := schedule.Day(instant.Weekday())
	if !day.HasValidWindow() {
		return false
	}

	m := minuteOfDay(instant)
	return day.OpenTime.Minutes() <= m && m < day.CloseTime.Minutes()
}

// CheckInstant проверяет момент начала интервала
// Возвращает nil, если помещение открыто
func CheckInstant(schedule domain.OperationalSchedule, instant time.Time) *domain.Violation {
	if IsOpenAt(schedule, instant) {
		return nil
	}

	dayStart := domain.StartOfDay(instant, instant.Location())
	day := schedule.Day(instant.Weekday())
	if !day.IsOpen {
		v := domain.NewClosedDayViolation(dayStart)
		return &v
	}

	v := domain.NewOutsideHoursViolation(dayStart, day.WindowLabel())
	return &v
}

// CheckWindow проверяет почасовой интервал [start, end)
// Начало должно попадать в окно работы своего дня, конец - не позже закрытия своего дня
// Если интервал переходит через полночь, помещение должно работать без перерыва:
// до 24:00 в первый день и с 00:00 в последний
func CheckWindow(schedule domain.OperationalSchedule, start, end time.Time) []domain.Violation {
	if schedule.AlwaysOpen {
		return nil
	}

	violations := make([]domain.Violation, 0, 2)
	loc := start.Location()

	if v := CheckInstant(schedule, start); v != nil {
		violations = append(violations, *v)
	}

	endDay, endMinute := endPosition(start, end)
	if v := checkEnd(schedule, endDay, endMinute); v != nil && !containsSame(violations, *v) {
		violations = append(violations, *v)
	}

	if len(violations) > 0 {
		return violations
	}

	// Многодневный интервал: проверяем непрерывность работы на стыке суток
	startDay := domain.StartOfDay(start, loc)
	if endDay.After(startDay) {
		first := schedule.Day(startDay.Weekday())
		if first.CloseTime.Minutes() != types.MinutesPerDay {
			violations = append(violations, domain.NewOutsideHoursViolation(startDay, first.WindowLabel()))
		}
		domain.EachDay(startDay.AddDate(0, 0, 1), endDay, loc, func(day time.Time) {
			d := schedule.Day(day.Weekday())
			v := checkContinuity(d, day, day.Equal(endDay))
			if v != nil && !containsSame(violations, *v) {
				violations = append(violations, *v)
			}
		})
	}

	return violations
}

// CheckSessions проверяет полудневный интервал [start, end)
// Окно сессии проверяется в каждый из дней отдельно, правило непрерывной
// работы через полночь к нему не применяется
func CheckSessions(schedule domain.OperationalSchedule, start, end time.Time) []domain.Violation {
	if schedule.AlwaysOpen {
		return nil
	}

	var violations []domain.Violation
	for _, segment := range domain.SessionSegments(start, end, start.Location()) {
		for _, v := range CheckWindow(schedule, segment.Start, segment.End) {
			if !containsSame(violations, v) {
				violations = append(violations, v)
			}
		}
	}
	return violations
}

// CheckDateRange проверяет, что в отрезке дат [from, to] нет выходных дней
// Каждый закрытый день даёт отдельное нарушение
func CheckDateRange(schedule domain.OperationalSchedule, from, to time.Time) []domain.Violation {
	if schedule.AlwaysOpen {
		return nil
	}

	var violations []domain.Violation
	domain.EachDay(from, to, from.Location(), func(day time.Time) {
		if !IsOpenOnDay(schedule, day) {
			violations = append(violations, domain.NewClosedDayViolation(day))
		}
	})
	return violations
}

func checkEnd(schedule domain.OperationalSchedule, endDay time.Time, endMinute int) *domain.Violation {
	day := schedule.Day(endDay.Weekday())
	if !day.IsOpen {
		v := domain.NewClosedDayViolation(endDay)
		return &v
	}
	if !day.HasValidWindow() || endMinute <= day.OpenTime.Minutes() || endMinute > day.CloseTime.Minutes() {
		v := domain.NewOutsideHoursViolation(endDay, day.WindowLabel())
		return &v
	}
	return nil
}

// checkContinuity промежуточные дни должны работать круглосуточно,
// последний день - открываться в 00:00
func checkContinuity(d domain.DaySchedule, day time.Time, last bool) *domain.Violation {
	if !d.IsOpen {
		v := domain.NewClosedDayViolation(day)
		return &v
	}
	if d.OpenTime.Minutes() != 0 || (!last && d.CloseTime.Minutes() != types.MinutesPerDay) {
		v := domain.NewOutsideHoursViolation(day, d.WindowLabel())
		return &v
	}
	return nil
}

// endPosition день и минута окончания интервала
// Конец ровно в полночь относится к предыдущему дню как 24:00
func endPosition(start, end time.Time) (time.Time, int) {
	loc := start.Location()
	end = end.In(loc)
	endDay := domain.StartOfDay(end, loc)
	m := minuteOfDay(end)

	if m == 0 && end.Equal(endDay) && endDay.After(domain.StartOfDay(start, loc)) {
		return endDay.AddDate(0, 0, -1), types.MinutesPerDay
	}
	return endDay, m
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func containsSame(violations []domain.Violation, v domain.Violation) bool {
	for _, existing := range violations {
		if existing.Kind == v.Kind && existing.Day.Equal(v.Day) {
			return true
		}
	}
	return false
}
