package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// weekdays открыто пн-пт 09:00-18:00, сб-вс выходной
func weekdays() domain.OperationalSchedule {
	var s domain.OperationalSchedule
	for d := time.Monday; d <= time.Friday; d++ {
		s.Days[d] = domain.DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"}
	}
	return s
}

func roundTheClock() domain.OperationalSchedule {
	var s domain.OperationalSchedule
	for d := time.Sunday; d <= time.Saturday; d++ {
		s.Days[d] = domain.DaySchedule{IsOpen: true, OpenTime: "00:00", CloseTime: types.EndOfDay}
	}
	return s
}

func at(day, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+clock, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsOpenAt(t *testing.T) {
	s := weekdays()

	tests := []struct {
		name    string
		instant time.Time
		want    bool
	}{
		{name: "open time inclusive", instant: at("2024-05-06", "09:00"), want: true},
		{name: "inside window", instant: at("2024-05-06", "13:30"), want: true},
		{name: "minute before close", instant: at("2024-05-06", "17:59"), want: true},
		{name: "close time exclusive", instant: at("2024-05-06", "18:00"), want: false},
		{name: "before open", instant: at("2024-05-06", "08:59"), want: false},
		{name: "closed day", instant: at("2024-05-05", "12:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOpenAt(s, tt.instant))
		})
	}
}

func TestIsOpenAt_AlwaysOpen(t *testing.T) {
	s := domain.OperationalSchedule{AlwaysOpen: true}

	assert.True(t, IsOpenAt(s, at("2024-05-05", "03:00")))
	assert.True(t, IsOpenOnDay(s, at("2024-05-05", "00:00")))
}

func TestIsOpenAt_InvalidWindowIsClosed(t *testing.T) {
	var s domain.OperationalSchedule
	s.Days[time.Monday] = domain.DaySchedule{IsOpen: true, OpenTime: "18:00", CloseTime: "09:00"}

	assert.False(t, IsOpenAt(s, at("2024-05-06", "12:00")))
	assert.True(t, IsOpenOnDay(s, at("2024-05-06", "00:00")))
}

func TestCheckWindow_ClosedSunday(t *testing.T) {
	violations := CheckWindow(weekdays(), at("2024-05-05", "10:00"), at("2024-05-05", "12:00"))

	require.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationClosedDay, violations[0].Kind)
	assert.Equal(t, "Sunday", violations[0].DayLabel)
	assert.Equal(t, at("2024-05-05", "00:00"), violations[0].Day)
}

func TestCheckWindow_Boundaries(t *testing.T) {
	s := weekdays()

	tests := []struct {
		name       string
		start, end time.Time
		wantKinds  []domain.ViolationKind
	}{
		{
			name:  "exactly the operating window",
			start: at("2024-05-06", "09:00"),
			end:   at("2024-05-06", "18:00"),
		},
		{
			name:      "starts at close time",
			start:     at("2024-05-06", "18:00"),
			end:       at("2024-05-06", "19:00"),
			wantKinds: []domain.ViolationKind{domain.ViolationOutsideHours},
		},
		{
			name:      "ends after close",
			start:     at("2024-05-06", "17:00"),
			end:       at("2024-05-06", "19:00"),
			wantKinds: []domain.ViolationKind{domain.ViolationOutsideHours},
		},
		{
			name:      "starts before open",
			start:     at("2024-05-06", "08:00"),
			end:       at("2024-05-06", "10:00"),
			wantKinds: []domain.ViolationKind{domain.ViolationOutsideHours},
		},
		{
			name:      "ends on closed day",
			start:     at("2024-05-10", "17:00"),
			end:       at("2024-05-11", "01:00"),
			wantKinds: []domain.ViolationKind{domain.ViolationClosedDay},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := CheckWindow(s, tt.start, tt.end)

			kinds := make([]domain.ViolationKind, 0, len(violations))
			for _, v := range violations {
				kinds = append(kinds, v.Kind)
			}
			if len(tt.wantKinds) == 0 {
				assert.Empty(t, kinds)
				return
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestCheckWindow_OutsideHoursCarriesWindow(t *testing.T) {
	violations := CheckWindow(weekdays(), at("2024-05-06", "18:00"), at("2024-05-06", "19:00"))

	require.Len(t, violations, 1)
	assert.Equal(t, "09:00–18:00", violations[0].Window)
}

func TestCheckWindow_MidnightEndCountsAsEndOfDay(t *testing.T) {
	s := roundTheClock()

	violations := CheckWindow(s, at("2024-05-06", "18:00"), at("2024-05-07", "00:00"))
	assert.Empty(t, violations)
}

func TestCheckWindow_OvernightNeedsContinuousHours(t *testing.T) {
	s := weekdays()
	// Открыто с утра до вечера, ночью закрыто
	violations := CheckWindow(s, at("2024-05-06", "10:00"), at("2024-05-07", "10:00"))
	require.NotEmpty(t, violations)
	assert.Equal(t, domain.ViolationOutsideHours, violations[0].Kind)

	assert.Empty(t, CheckWindow(roundTheClock(), at("2024-05-06", "10:00"), at("2024-05-07", "10:00")))
}

func TestCheckDateRange(t *testing.T) {
	s := weekdays()

	// пт 10 мая - пн 13 мая: суббота и воскресенье закрыты
	violations := CheckDateRange(s, at("2024-05-10", "00:00"), at("2024-05-13", "00:00"))

	require.Len(t, violations, 2)
	assert.Equal(t, "Saturday", violations[0].DayLabel)
	assert.Equal(t, "Sunday", violations[1].DayLabel)
	for _, v := range violations {
		assert.Equal(t, domain.ViolationClosedDay, v.Kind)
	}

	assert.Empty(t, CheckDateRange(s, at("2024-05-06", "00:00"), at("2024-05-10", "00:00")))
}

func TestCheckSessions(t *testing.T) {
	s := weekdays()

	tests := []struct {
		name       string
		start, end time.Time
		want       []domain.ViolationKind
	}{
		{name: "single day inside window", start: at("2024-05-06", "10:00"), end: at("2024-05-06", "16:00")},
		{name: "several weekdays skip nights", start: at("2024-05-06", "10:00"), end: at("2024-05-08", "16:00")},
		{
			name:  "session starts before opening every day",
			start: at("2024-05-06", "08:00"),
			end:   at("2024-05-07", "14:00"),
			want:  []domain.ViolationKind{domain.ViolationOutsideHours, domain.ViolationOutsideHours},
		},
		{
			name:  "weekend inside range",
			start: at("2024-05-10", "10:00"),
			end:   at("2024-05-13", "16:00"),
			want:  []domain.ViolationKind{domain.ViolationClosedDay, domain.ViolationClosedDay},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckSessions(s, tt.start, tt.end)
			kinds := make([]domain.ViolationKind, 0, len(got))
			for _, v := range got {
				kinds = append(kinds, v.Kind)
			}
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, kinds)
		})
	}
}

func TestCheckSessions_NightSessionEndsAtMidnight(t *testing.T) {
	var s domain.OperationalSchedule
	for d := time.Sunday; d <= time.Saturday; d++ {
		s.Days[d] = domain.DaySchedule{IsOpen: true, OpenTime: "08:00", CloseTime: types.EndOfDay}
	}

	assert.Empty(t, CheckSessions(s, at("2024-05-06", "18:00"), at("2024-05-09", "00:00")))

	got := CheckWindow(s, at("2024-05-06", "18:00"), at("2024-05-09", "00:00"))
	require.NotEmpty(t, got)
}
