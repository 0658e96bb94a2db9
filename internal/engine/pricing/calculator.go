// Package pricing вычисляет интервал и базовую стоимость бронирования по типу тарификации.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

var (
	ErrUnknownPricingType = errors.New("pricing: unknown pricing type")
	ErrMissingParams      = errors.New("pricing: missing parameters")
	ErrEndBeforeStart     = errors.New("pricing: end is not after start")
	ErrSpanTooLong        = errors.New("pricing: span is too long")
	ErrInvalidSession     = errors.New("pricing: invalid half-day session")
	ErrInvalidCount       = errors.New("pricing: invalid period count")
)

// Params входные параметры, набор обязательных полей зависит от типа тарификации
//
//	hourly:  Start, End
//	halfday: Date, Session, опционально EndDate для нескольких дней подряд
//	daily:   Start, End - первый и последний день включительно
//	monthly: Start, MonthCount
//	yearly:  Start, YearCount
type Params struct {
	Start      time.Time
	End        time.Time
	Date       time.Time
	EndDate    time.Time
	Session    domain.HalfDaySession
	MonthCount int
	YearCount  int
}

// In переводит заданные моменты параметров в часовой пояс календаря loc
func (p Params) In(loc *time.Location) Params {
	for _, t := range []*time.Time{&p.Start, &p.End, &p.Date, &p.EndDate} {
		if !t.IsZero() {
			*t = t.In(loc)
		}
	}
	return p
}

// Derived вычисленный интервал и стоимость
// Для типов на весь день End - полночь последнего дня включительно
type Derived struct {
	Start          time.Time
	End            time.Time
	Units          int
	BasePrice      float64
	PriceAvailable bool
}

// Derive вычисляет интервал и стоимость бронирования
// Отсутствие ставки в прайсе не ошибка: PriceAvailable = false, BasePrice = 0
func Derive(space *domain.Space, pricingType domain.PricingType, params Params) (*Derived, error) {
	if space == nil {
		return nil, fmt.Errorf("%w: space is required", ErrMissingParams)
	}

	var (
		derived *Derived
		err     error
	)

	switch pricingType {
	case domain.PricingHourly:
		derived, err = deriveHourly(params)
	case domain.PricingHalfDay:
		derived, err = deriveHalfDay(params)
	case domain.PricingDaily:
		derived, err = deriveDaily(params)
	case domain.PricingMonthly:
		derived, err = deriveMonthly(params)
	case domain.PricingYearly:
		derived, err = deriveYearly(params)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPricingType, pricingType)
	}
	if err != nil {
		return nil, err
	}

	rate, ok := space.Prices.Rate(pricingType)
	if !ok {
		return derived, nil
	}

	derived.PriceAvailable = true
	if pricingType == domain.PricingHalfDay && derived.Units > 1 {
		// Несколько дней подряд считаются как две сессии в день
		derived.BasePrice = roundMoney(rate * 2 * float64(derived.Units))
	} else {
		derived.BasePrice = roundMoney(rate * float64(derived.Units))
	}

	return derived, nil
}

func deriveHourly(p Params) (*Derived, error) {
	if p.Start.IsZero() || p.End.IsZero() {
		return nil, fmt.Errorf("%w: hourly requires start and end", ErrMissingParams)
	}
	if !p.End.After(p.Start) {
		return nil, fmt.Errorf("%w: start=%s end=%s", ErrEndBeforeStart, p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339))
	}

	duration := p.End.Sub(p.Start)
	if duration > domain.MaxHourlySpanHours*time.Hour {
		return nil, fmt.Errorf("%w: %s exceeds %d hours", ErrSpanTooLong, duration, domain.MaxHourlySpanHours)
	}

	units := int(math.Ceil(duration.Hours()))
	if units < 1 {
		units = 1
	}

	return &Derived{Start: p.Start, End: p.End, Units: units}, nil
}

func deriveHalfDay(p Params) (*Derived, error) {
	if p.Date.IsZero() || p.Session == "" {
		return nil, fmt.Errorf("%w: halfday requires date and session", ErrMissingParams)
	}

	window, ok := p.Session.Window()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSession, p.Session)
	}

	loc := p.Date.Location()
	firstDay := domain.StartOfDay(p.Date, loc)
	lastDay := firstDay
	if !p.EndDate.IsZero() {
		lastDay = domain.StartOfDay(p.EndDate, loc)
	}
	if lastDay.Before(firstDay) {
		return nil, fmt.Errorf("%w: date=%s end_date=%s", ErrEndBeforeStart, firstDay.Format(domain.DateFormat), lastDay.Format(domain.DateFormat))
	}

	// time.Date нормализует час 24 в полночь следующего дня
	start := time.Date(firstDay.Year(), firstDay.Month(), firstDay.Day(), window.StartHour, 0, 0, 0, loc)
	end := time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), window.EndHour, 0, 0, 0, loc)

	return &Derived{
		Start: start,
		End:   end,
		Units: domain.DaysBetween(firstDay, lastDay, loc) + 1,
	}, nil
}

func deriveDaily(p Params) (*Derived, error) {
	if p.Start.IsZero() || p.End.IsZero() {
		return nil, fmt.Errorf("%w: daily requires start and end dates", ErrMissingParams)
	}

	loc := p.Start.Location()
	first := domain.StartOfDay(p.Start, loc)
	last := domain.StartOfDay(p.End, loc)
	if last.Before(first) {
		return nil, fmt.Errorf("%w: start=%s end=%s", ErrEndBeforeStart, first.Format(domain.DateFormat), last.Format(domain.DateFormat))
	}

	return &Derived{
		Start: first,
		End:   last,
		Units: domain.DaysBetween(first, last, loc) + 1,
	}, nil
}

func deriveMonthly(p Params) (*Derived, error) {
	if p.Start.IsZero() {
		return nil, fmt.Errorf("%w: monthly requires start date", ErrMissingParams)
	}
	if p.MonthCount < 1 || p.MonthCount > domain.MaxMonthCount {
		return nil, fmt.Errorf("%w: month count %d not in [1, %d]", ErrInvalidCount, p.MonthCount, domain.MaxMonthCount)
	}

	first := domain.StartOfDay(p.Start, p.Start.Location())
	return &Derived{
		Start: first,
		End:   AddMonths(first, p.MonthCount).AddDate(0, 0, -1),
		Units: p.MonthCount,
	}, nil
}

func deriveYearly(p Params) (*Derived, error) {
	if p.Start.IsZero() {
		return nil, fmt.Errorf("%w: yearly requires start date", ErrMissingParams)
	}
	if p.YearCount < 1 || p.YearCount > domain.MaxYearCount {
		return nil, fmt.Errorf("%w: year count %d not in [1, %d]", ErrInvalidCount, p.YearCount, domain.MaxYearCount)
	}

	first := domain.StartOfDay(p.Start, p.Start.Location())
	return &Derived{
		Start: first,
		End:   AddMonths(first, 12*p.YearCount).AddDate(0, 0, -1),
		Units: p.YearCount,
	}, nil
}

// AddMonths сдвигает дату на n календарных месяцев
// Если в целевом месяце нет такого числа, берётся последний день месяца:
// 31 января + 1 месяц = 29 февраля 2024
func AddMonths(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, day.Location())
	if last := daysIn(firstOfTarget); d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, day.Location())
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
