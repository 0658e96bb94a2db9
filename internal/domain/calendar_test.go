package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(day, hm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+hm, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSessionSegments(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       []Interval
	}{
		{
			name:  "single day",
			start: clock("2024-05-06", "06:00"),
			end:   clock("2024-05-06", "12:00"),
			want:  []Interval{{Start: clock("2024-05-06", "06:00"), End: clock("2024-05-06", "12:00")}},
		},
		{
			name:  "single night session ends at midnight",
			start: clock("2024-05-06", "18:00"),
			end:   clock("2024-05-07", "00:00"),
			want:  []Interval{{Start: clock("2024-05-06", "18:00"), End: clock("2024-05-07", "00:00")}},
		},
		{
			name:  "two mornings",
			start: clock("2024-05-06", "06:00"),
			end:   clock("2024-05-07", "12:00"),
			want: []Interval{
				{Start: clock("2024-05-06", "06:00"), End: clock("2024-05-06", "12:00")},
				{Start: clock("2024-05-07", "06:00"), End: clock("2024-05-07", "12:00")},
			},
		},
		{
			name:  "two nights",
			start: clock("2024-05-06", "18:00"),
			end:   clock("2024-05-08", "00:00"),
			want: []Interval{
				{Start: clock("2024-05-06", "18:00"), End: clock("2024-05-07", "00:00")},
				{Start: clock("2024-05-07", "18:00"), End: clock("2024-05-08", "00:00")},
			},
		},
		{
			name:  "end before start time of day is kept whole",
			start: clock("2024-05-06", "18:00"),
			end:   clock("2024-05-07", "12:00"),
			want:  []Interval{{Start: clock("2024-05-06", "18:00"), End: clock("2024-05-07", "12:00")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SessionSegments(tt.start, tt.end, time.UTC))
		})
	}
}

func TestReservation_Segments(t *testing.T) {
	session := SessionMorning
	halfDay := &Reservation{
		PricingType: PricingHalfDay,
		Session:     &session,
		StartAt:     clock("2024-05-06", "06:00"),
		EndAt:       clock("2024-05-08", "12:00"),
	}
	require.Len(t, halfDay.Segments(time.UTC), 3)

	hourly := &Reservation{
		PricingType: PricingHourly,
		StartAt:     clock("2024-05-06", "22:00"),
		EndAt:       clock("2024-05-07", "02:00"),
	}
	assert.Equal(t, []Interval{{Start: hourly.StartAt, End: hourly.EndAt}}, hourly.Segments(time.UTC))

	daily := &Reservation{
		PricingType: PricingDaily,
		StartAt:     clock("2024-05-06", "00:00"),
		EndAt:       clock("2024-05-07", "00:00"),
	}
	assert.Equal(t, []Interval{{Start: clock("2024-05-06", "00:00"), End: clock("2024-05-08", "00:00")}}, daily.Segments(time.UTC))
}
