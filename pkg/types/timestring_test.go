package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "regular", input: "09:30", want: "09:30"},
		{name: "postgres time", input: "18:00:00", want: "18:00"},
		{name: "end of day", input: "24:00", want: EndOfDay},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "hour overflow", input: "25:00", wantErr: true},
		{name: "24 with minutes", input: "24:30", wantErr: true},
		{name: "minute overflow", input: "10:60", wantErr: true},
		{name: "no leading zero", input: "9:00", wantErr: true},
		{name: "dash", input: "09-00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	ts := MustTimeString("10:15")

	assert.Equal(t, 615, ts.Minutes())

	later, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:00"), later)
	assert.True(t, ts.IsBefore(later))
	assert.True(t, later.IsAfter(ts))

	end, err := MustTimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, EndOfDay, end)

	_, err = MustTimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfDay)

	assert.Equal(t, -1, TimeString("bad").Minutes())
}

func TestTimeString_On(t *testing.T) {
	day := time.Date(2024, 5, 1, 15, 42, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), MustTimeString("09:30").On(day))
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), EndOfDay.On(day))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:00:00"))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan([]byte("17:45")))
	assert.Equal(t, TimeString("17:45"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 6, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("06:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))

	v, err := TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
