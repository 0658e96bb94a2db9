package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/internal/engine/pricing"
)

// CandidateRequest параметры кандидата на бронирование
//
//	hourly:  start, end в формате RFC3339
//	halfday: date, session, опционально endDate
//	daily:   start, end - даты YYYY-MM-DD, оба дня включительно
//	monthly: start, monthCount
//	yearly:  start, yearCount
type CandidateRequest struct {
	PricingType string `json:"pricingType"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Date        string `json:"date,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Session     string `json:"session,omitempty"`
	MonthCount  int    `json:"monthCount,omitempty"`
	YearCount   int    `json:"yearCount,omitempty"`
}

// ToParams разбирает даты и моменты кандидата
// Даты без времени относятся к календарю loc
func (r *CandidateRequest) ToParams(loc *time.Location) (domain.PricingType, pricing.Params, error) {
	params := pricing.Params{
		Session:    domain.HalfDaySession(r.Session),
		MonthCount: r.MonthCount,
		YearCount:  r.YearCount,
	}

	fields := []struct {
		name  string
		value string
		dst   *time.Time
	}{
		{"start", r.Start, &params.Start},
		{"end", r.End, &params.End},
		{"date", r.Date, &params.Date},
		{"endDate", r.EndDate, &params.EndDate},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		t, err := ParseMoment(f.value, loc)
		if err != nil {
			return "", pricing.Params{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = t
	}

	return domain.PricingType(r.PricingType), params, nil
}

// ParseMoment принимает RFC3339 или дату YYYY-MM-DD (полночь в loc)
func ParseMoment(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return ParseDate(value, loc)
}

// ParseDate разбирает дату YYYY-MM-DD как полночь в loc
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(domain.DateFormat, value, loc)
}
