package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// Request модели

// SpaceRequest данные помещения для создания и полной замены
type SpaceRequest struct {
	Name       string               `json:"name" validate:"required,max=200"`
	AlwaysOpen bool                 `json:"alwaysOpen"`
	Schedule   []DayScheduleRequest `json:"schedule" validate:"max=7,unique=Weekday,dive"`
	// Prices ставка за единицу: {"hourly": 50, "daily": 300}
	Prices map[string]float64 `json:"prices" validate:"dive,keys,oneof=hourly halfday daily monthly yearly,endkeys,gte=0"`
}

// DayScheduleRequest расписание одного дня недели
// Дни, которых нет в запросе, считаются выходными
type DayScheduleRequest struct {
	Weekday   string `json:"weekday" validate:"required,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty" validate:"required_if=IsOpen true,hhmm"`  // "09:00"
	CloseTime string `json:"closeTime,omitempty" validate:"required_if=IsOpen true,hhmm"` // "18:00" или "24:00"
}

// Response модели

// SpaceResponse ответ с данными помещения
type SpaceResponse struct {
	ID         int64                 `json:"id"`
	Name       string                `json:"name"`
	AlwaysOpen bool                  `json:"alwaysOpen"`
	Schedule   []DayScheduleResponse `json:"schedule"`
	Prices     map[string]float64    `json:"prices"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// DayScheduleResponse расписание дня недели
type DayScheduleResponse struct {
	Weekday   string `json:"weekday"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// Методы конвертации

// ParseWeekday возвращает день недели по названию в нижнем регистре
func ParseWeekday(name string) (time.Weekday, bool) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(wd.String(), name) {
			return wd, true
		}
	}
	return 0, false
}

// ToDomainSpace конвертирует провалидированный запрос в domain модель
func (r *SpaceRequest) ToDomainSpace() *domain.Space {
	space := &domain.Space{
		Name:   strings.TrimSpace(r.Name),
		Prices: make(domain.PriceTable, len(r.Prices)),
		Schedule: domain.OperationalSchedule{
			AlwaysOpen: r.AlwaysOpen,
		},
	}

	for _, d := range r.Schedule {
		wd, ok := ParseWeekday(d.Weekday)
		if !ok {
			continue
		}
		day := domain.DaySchedule{IsOpen: d.IsOpen}
		if d.IsOpen {
			day.OpenTime = types.TimeString(d.OpenTime)
			day.CloseTime = types.TimeString(d.CloseTime)
		}
		space.Schedule.Days[wd] = day
	}

	for pricingType, rate := range r.Prices {
		if rate > 0 {
			space.Prices[domain.PricingType(pricingType)] = rate
		}
	}

	return space
}

// FromDomainSpace конвертирует domain модель в DTO
func FromDomainSpace(s *domain.Space) *SpaceResponse {
	if s == nil {
		return nil
	}

	resp := &SpaceResponse{
		ID:         s.ID,
		Name:       s.Name,
		AlwaysOpen: s.Schedule.AlwaysOpen,
		Schedule:   make([]DayScheduleResponse, 0, domain.DaysPerWeek),
		Prices:     make(map[string]float64, len(s.Prices)),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		d := s.Schedule.Days[wd]
		day := DayScheduleResponse{
			Weekday: strings.ToLower(wd.String()),
			IsOpen:  d.IsOpen,
		}
		if d.IsOpen {
			day.OpenTime = d.OpenTime.String()
			day.CloseTime = d.CloseTime.String()
		}
		resp.Schedule = append(resp.Schedule, day)
	}

	for pricingType, rate := range s.Prices {
		resp.Prices[string(pricingType)] = rate
	}

	return resp
}
