package domain

import "time"

// StartOfDay возвращает полночь календарного дня t в часовом поясе loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDay возвращает true, если a и b относятся к одному календарному дню в loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// DaysBetween количество календарных дней от from до to (to - from)
// Считается по датам, поэтому не зависит от перехода на летнее время
func DaysBetween(from, to time.Time, loc *time.Location) int {
	fy, fm, fd := from.In(loc).Date()
	ty, tm, td := to.In(loc).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// EachDay вызывает fn для каждого календарного дня отрезка [from, to] включительно
func EachDay(from, to time.Time, loc *time.Location, fn func(day time.Time)) {
	last := StartOfDay(to, loc)
	for day := StartOfDay(from, loc); !day.After(last); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// SessionSegments разбивает полудневный интервал [start, end) на окна сессии по дням
// Начало берётся как время суток первого дня, конец - как время суток последнего,
// конец ровно в полночь означает 24:00 последнего дня.
// Интервал в пределах одних суток или без формы сессии возвращается целиком
func SessionSegments(start, end time.Time, loc *time.Location) []Interval {
	start, end = start.In(loc), end.In(loc)
	firstDay := StartOfDay(start, loc)
	lastDay := StartOfDay(end, loc)
	endAtMidnight := end.Equal(lastDay)
	if endAtMidnight {
		lastDay = lastDay.AddDate(0, 0, -1)
	}
	if !lastDay.After(firstDay) {
		return []Interval{{Start: start, End: end}}
	}

	segmentEnd := func(day time.Time) time.Time {
		if endAtMidnight {
			return day.AddDate(0, 0, 1)
		}
		return time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), end.Second(), end.Nanosecond(), loc)
	}
	if !segmentEnd(firstDay).After(start) {
		return []Interval{{Start: start, End: end}}
	}

	var segments []Interval
	EachDay(firstDay, lastDay, loc, func(day time.Time) {
		segments = append(segments, Interval{
			Start: time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), loc),
			End:   segmentEnd(day),
		})
	})
	return segments
}
