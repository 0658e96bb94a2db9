// Package availability строит календарь занятости помещения за период.
package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/hours"
)

// ErrInvalidRange конец периода раньше начала
var ErrInvalidRange = errors.New("availability: invalid range")

const hoursPerDay = 24

// Options параметры построения индекса
type Options struct {
	// FullyBookedHours порог занятых часов, при котором день недоступен
	// Значение <= 0 заменяется на domain.DefaultFullyBookedHours
	FullyBookedHours int
	// Schedule если задано, заполняет AvailabilityDay.Open
	Schedule *domain.OperationalSchedule
}

// Index календарь занятости помещения на отрезке дат [From, To]
// Индекс неизменяем после построения и безопасен для чтения из нескольких горутин
type Index struct {
	SpaceID int64
	From    time.Time
	To      time.Time
	Days    []domain.AvailabilityDay
	Slots   []domain.BookedSlot

	loc        *time.Location
	dayByDate  map[string]int
	slotsByDay map[int][]int
}

type slotKey struct {
	day  int
	hour int
}

// Build строит индекс по бронированиям помещения spaceID за отрезок дат [from, to]
// Учитываются только бронирования этого помещения в статусах confirmed и active
// Календарь берётся из часового пояса from
func Build(spaceID int64, reservations []*domain.Reservation, from, to time.Time, opts Options) (*Index, error) {
	loc := from.Location()
	fromDay := domain.StartOfDay(from, loc)
	toDay := domain.StartOfDay(to, loc)
	if toDay.Before(fromDay) {
		return nil, fmt.Errorf("%w: from=%s to=%s", ErrInvalidRange, fromDay.Format(domain.DateFormat), toDay.Format(domain.DateFormat))
	}

	threshold := opts.FullyBookedHours
	if threshold <= 0 {
		threshold = domain.DefaultFullyBookedHours
	}

	idx := &Index{
		SpaceID:    spaceID,
		From:       fromDay,
		To:         toDay,
		loc:        loc,
		dayByDate:  make(map[string]int),
		slotsByDay: make(map[int][]int),
	}

	domain.EachDay(fromDay, toDay, loc, func(day time.Time) {
		idx.dayByDate[dateKey(day)] = len(idx.Days)
		entry := domain.AvailabilityDay{Date: day, Available: true, Open: true}
		if opts.Schedule != nil {
			entry.Open = hours.IsOpenOnDay(*opts.Schedule, day)
		}
		idx.Days = append(idx.Days, entry)
	})

	occupying := filterOccupying(spaceID, reservations)
	rangeEnd := toDay.AddDate(0, 0, 1)

	fullDay := make([]bool, len(idx.Days))
	slotIDs := make(map[slotKey][]int64)

	for _, r := range occupying {
		start, end := r.Window(loc)
		if !start.Before(rangeEnd) || !end.After(fromDay) {
			continue
		}

		first, last := clampDays(start, end, fromDay, toDay, loc)
		for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
			i := idx.dayByDate[dateKey(day)]
			idx.Days[i].Reservations = append(idx.Days[i].Reservations, r)
			if r.PricingType.IsFullDay() {
				fullDay[i] = true
			}
		}

		if !r.PricingType.IsHourGranular() {
			continue
		}
		for _, segment := range r.Segments(loc) {
			EachHour(segment.Start, segment.End, loc, func(day time.Time, hour int) {
				i, ok := idx.dayByDate[dateKey(day)]
				if !ok {
					return
				}
				key := slotKey{day: i, hour: hour}
				slotIDs[key] = appendUnique(slotIDs[key], r.ID)
			})
		}
	}

	for i := range idx.Days {
		for hour := 0; hour < hoursPerDay; hour++ {
			ids, ok := slotIDs[slotKey{day: i, hour: hour}]
			if !ok {
				continue
			}
			idx.slotsByDay[i] = append(idx.slotsByDay[i], len(idx.Slots))
			idx.Slots = append(idx.Slots, domain.BookedSlot{
				SpaceID:        spaceID,
				Date:           idx.Days[i].Date,
				Hour:           hour,
				ReservationIDs: ids,
			})
		}

		idx.Days[i].BookedHours = len(idx.slotsByDay[i])
		idx.Days[i].Available = !fullDay[i] && idx.Days[i].BookedHours < threshold
	}

	return idx, nil
}

// Location часовой пояс календаря индекса
func (i *Index) Location() *time.Location {
	return i.loc
}

// Covers возвращает true, если день входит в период индекса
func (i *Index) Covers(date time.Time) bool {
	_, ok := i.dayByDate[dateKey(date.In(i.loc))]
	return ok
}

// Day возвращает запись календаря на день
func (i *Index) Day(date time.Time) (domain.AvailabilityDay, bool) {
	pos, ok := i.dayByDate[dateKey(date.In(i.loc))]
	if !ok {
		return domain.AvailabilityDay{}, false
	}
	return i.Days[pos], true
}

// SlotsOn возвращает занятые часы дня по возрастанию
func (i *Index) SlotsOn(date time.Time) []domain.BookedSlot {
	pos, ok := i.dayByDate[dateKey(date.In(i.loc))]
	if !ok {
		return nil
	}

	positions := i.slotsByDay[pos]
	slots := make([]domain.BookedSlot, 0, len(positions))
	for _, p := range positions {
		slots = append(slots, i.Slots[p])
	}
	return slots
}

// Slot возвращает занятый час дня
func (i *Index) Slot(date time.Time, hour int) (domain.BookedSlot, bool) {
	pos, ok := i.dayByDate[dateKey(date.In(i.loc))]
	if !ok {
		return domain.BookedSlot{}, false
	}
	for _, p := range i.slotsByDay[pos] {
		if i.Slots[p].Hour == hour {
			return i.Slots[p], true
		}
	}
	return domain.BookedSlot{}, false
}

// EachHour вызывает fn для каждого часа, который задевает интервал [start, end)
// Начало округляется вниз до часа, конец - вверх
func EachHour(start, end time.Time, loc *time.Location, fn func(day time.Time, hour int)) {
	if !end.After(start) {
		return
	}
	start = start.In(loc)
	cursor := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, loc)
	for ; cursor.Before(end); cursor = cursor.Add(time.Hour) {
		local := cursor.In(loc)
		fn(domain.StartOfDay(local, loc), local.Hour())
	}
}

// filterOccupying оставляет бронирования помещения в занимающих статусах
// с корректным интервалом и упорядочивает их по началу
func filterOccupying(spaceID int64, reservations []*domain.Reservation) []*domain.Reservation {
	result := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r == nil || r.SpaceID != spaceID || !r.Status.IsOccupying() {
			continue
		}
		if r.PricingType.IsHourGranular() && !r.EndAt.After(r.StartAt) {
			continue
		}
		if r.PricingType.IsFullDay() && r.EndAt.Before(r.StartAt) {
			continue
		}
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

// clampDays первый и последний день пересечения [start, end) с отрезком индекса
func clampDays(start, end, fromDay, toDay time.Time, loc *time.Location) (time.Time, time.Time) {
	first := domain.StartOfDay(start, loc)
	if first.Before(fromDay) {
		first = fromDay
	}

	// end не включается: конец ровно в полночь не задевает следующий день
	last := domain.StartOfDay(end.Add(-time.Nanosecond), loc)
	if last.After(toDay) {
		last = toDay
	}
	return first, last
}

func dateKey(day time.Time) string {
	return day.Format(domain.DateFormat)
}

func appendUnique(ids []int64, id int64) []int64 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
