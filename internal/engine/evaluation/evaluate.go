// Package evaluation собирает проверки кандидата в одно решение:
// расписание работы, индекс занятости и поиск пересечений.
package evaluation

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/availability"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/conflict"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/hours"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/pricing"
)

// ErrInvalidCandidate кандидат не может быть проверен
var ErrInvalidCandidate = errors.New("evaluation: invalid candidate")

// Options параметры проверки
type Options struct {
	FullyBookedHours int
}

// Result итог проверки кандидата
type Result struct {
	Violations []domain.Violation
	Conflicts  []*domain.Reservation
	Index      *availability.Index
}

// OK возвращает true, если нарушений нет
func (r Result) OK() bool {
	return len(r.Violations) == 0
}

// Evaluate проверяет кандидата с вычисленным интервалом derived
// existing - снимок бронирований помещения, покрывающий интервал кандидата
// Нарушения расписания идут первыми, пересечение - последним
func Evaluate(space *domain.Space, pricingType domain.PricingType, derived *pricing.Derived, existing []*domain.Reservation, opts Options) (Result, error) {
	if space == nil || derived == nil || !pricingType.IsValid() {
		return Result{}, fmt.Errorf("%w: space, pricing type and derived window are required", ErrInvalidCandidate)
	}

	violations := CheckSchedule(space.Schedule, pricingType, derived.Start, derived.End)

	loc := derived.Start.Location()
	from, to := CoveredDays(pricingType, derived.Start, derived.End, loc)
	schedule := space.Schedule
	idx, err := availability.Build(space.ID, existing, from, to, availability.Options{
		FullyBookedHours: opts.FullyBookedHours,
		Schedule:         &schedule,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidCandidate, err)
	}

	found, err := conflict.Detect(conflict.Candidate{
		SpaceID:     space.ID,
		PricingType: pricingType,
		Start:       derived.Start,
		End:         derived.End,
	}, idx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidCandidate, err)
	}
	if found.Conflict {
		violations = append(violations, domain.NewOverlapViolation(found.Reservations))
	}

	return Result{
		Violations: violations,
		Conflicts:  found.Reservations,
		Index:      idx,
	}, nil
}

// CheckSchedule применяет к кандидату правила расписания по типу тарификации
// Почасовые проверяются по часам, полудневные - окном сессии в каждый из дней,
// посуточные - по закрытым дням. Помесячные и годовые от закрытых дней не зависят
func CheckSchedule(schedule domain.OperationalSchedule, pricingType domain.PricingType, start, end time.Time) []domain.Violation {
	switch pricingType {
	case domain.PricingHourly:
		return hours.CheckWindow(schedule, start, end)
	case domain.PricingHalfDay:
		return hours.CheckSessions(schedule, start, end)
	case domain.PricingDaily:
		return hours.CheckDateRange(schedule, start, end)
	default:
		return nil
	}
}

// CoveredDays первый и последний календарный день, которые занимает кандидат
// Конец почасового интервала не включается: окончание в полночь не задевает следующий день
func CoveredDays(pricingType domain.PricingType, start, end time.Time, loc *time.Location) (time.Time, time.Time) {
	from := domain.StartOfDay(start, loc)
	if pricingType.IsFullDay() || !end.After(start) {
		return from, domain.StartOfDay(end, loc)
	}
	return from, domain.StartOfDay(end.Add(-time.Nanosecond), loc)
}

// OccupiedRange интервал [from, to), который нужно выбрать из хранилища для проверки кандидата
func OccupiedRange(pricingType domain.PricingType, start, end time.Time, loc *time.Location) (time.Time, time.Time) {
	from, to := CoveredDays(pricingType, start, end, loc)
	return from, to.AddDate(0, 0, 1)
}
