// Package conflict находит существующие бронирования, с которыми пересекается кандидат.
package conflict

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/availability"
)

// ErrNotCovered индекс не содержит всех дней кандидата
var ErrNotCovered = errors.New("conflict: index does not cover candidate")

// Candidate предлагаемое бронирование
// Для посуточных, помесячных и годовых Start и End - первый и последний день включительно
type Candidate struct {
	SpaceID     int64
	PricingType domain.PricingType
	Start       time.Time
	End         time.Time
}

// Result результат проверки
type Result struct {
	Conflict     bool
	Reservations []*domain.Reservation // по возрастанию начала, без повторов
}

// Detect проверяет кандидата по индексу занятости
//
// Почасовые и полудневные кандидаты сравниваются по часам: каждый час, который
// задевает кандидат, не должен быть занят почасовым бронированием, а его день -
// бронированием на весь день. Кандидаты на весь день конфликтуют с любым
// бронированием, задевающим хотя бы один из их дней.
//
// Полудневный кандидат на несколько дней занимает только окно сессии каждого дня.
//
// Если индекс не покрывает все дни кандидата, возвращается ErrNotCovered.
func Detect(c Candidate, idx *availability.Index) (Result, error) {
	if idx == nil || c.SpaceID != idx.SpaceID || !c.PricingType.IsValid() {
		return Result{}, nil
	}
	if err := checkCoverage(c, idx); err != nil {
		return Result{}, err
	}

	var found []*domain.Reservation
	if c.PricingType.IsHourGranular() {
		found = detectHourly(c, idx)
	} else {
		found = detectFullDay(c, idx)
	}

	found = dedupe(found)
	return Result{
		Conflict:     len(found) > 0,
		Reservations: found,
	}, nil
}

// checkCoverage проверяет, что индекс содержит первый и последний день кандидата
func checkCoverage(c Candidate, idx *availability.Index) error {
	loc := idx.Location()
	first := domain.StartOfDay(c.Start, loc)
	last := domain.StartOfDay(c.End, loc)
	if c.PricingType.IsHourGranular() && c.End.After(c.Start) {
		last = domain.StartOfDay(c.End.Add(-time.Nanosecond), loc)
	}
	if !idx.Covers(first) || !idx.Covers(last) {
		return fmt.Errorf("%w: candidate %s..%s, index %s..%s", ErrNotCovered,
			first.Format(domain.DateFormat), last.Format(domain.DateFormat),
			idx.From.Format(domain.DateFormat), idx.To.Format(domain.DateFormat))
	}
	return nil
}

func detectHourly(c Candidate, idx *availability.Index) []*domain.Reservation {
	var found []*domain.Reservation
	checkedDays := make(map[string]bool)

	segments := []domain.Interval{{Start: c.Start, End: c.End}}
	if c.PricingType == domain.PricingHalfDay {
		segments = domain.SessionSegments(c.Start, c.End, idx.Location())
	}

	for _, segment := range segments {
		availability.EachHour(segment.Start, segment.End, idx.Location(), func(day time.Time, hour int) {
			visitHour(idx, day, hour, checkedDays, &found)
		})
	}

	return found
}

// visitHour добавляет в found бронирования, занимающие час, и бронирования
// на весь день при первом обращении к дню
func visitHour(idx *availability.Index, day time.Time, hour int, checkedDays map[string]bool, found *[]*domain.Reservation) {
	if slot, ok := idx.Slot(day, hour); ok {
		for _, id := range slot.ReservationIDs {
			if r := reservationByID(idx, day, id); r != nil {
				*found = append(*found, r)
			}
		}
	}

	key := day.Format(domain.DateFormat)
	if checkedDays[key] {
		return
	}
	checkedDays[key] = true

	entry, ok := idx.Day(day)
	if !ok {
		return
	}
	for _, r := range entry.Reservations {
		if r.PricingType.IsFullDay() {
			*found = append(*found, r)
		}
	}
}

func detectFullDay(c Candidate, idx *availability.Index) []*domain.Reservation {
	var found []*domain.Reservation
	loc := idx.Location()

	domain.EachDay(c.Start, c.End, loc, func(day time.Time) {
		entry, ok := idx.Day(day)
		if !ok {
			return
		}
		found = append(found, entry.Reservations...)
	})

	return found
}

func reservationByID(idx *availability.Index, day time.Time, id int64) *domain.Reservation {
	entry, ok := idx.Day(day)
	if !ok {
		return nil
	}
	for _, r := range entry.Reservations {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// dedupe убирает повторы и сортирует по началу, затем по ID
func dedupe(reservations []*domain.Reservation) []*domain.Reservation {
	if len(reservations) == 0 {
		return nil
	}

	seen := make(map[int64]bool, len(reservations))
	result := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		result = append(result, r)
	}

	sort.SliceStable(result, func(a, b int) bool {
		if !result[a].StartAt.Equal(result[b].StartAt) {
			return result[a].StartAt.Before(result[b].StartAt)
		}
		return result[a].ID < result[b].ID
	})
	return result
}
