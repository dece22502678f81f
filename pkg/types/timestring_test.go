package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"00:00", false},
		{"09:30", false},
		{"23:59", false},
		{"24:00", false}, // граница конца суток
		{"24:01", true},
		{"25:00", true},
		{"10:60", true},
		{"9:00", true}, // без ведущего нуля
		{"10-00", true},
		{"10:00:00", true},
		{"", true},
		{"abcde", true},
	}

	for _, tt := range tests {
		_, err := NewTimeStringFromString(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input=%q", tt.input)
		} else {
			assert.NoError(t, err, "input=%q", tt.input)
		}
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, "00:00", ts.String())

	ts, err = NewTimeStringFromMinutes(9*60 + 15)
	require.NoError(t, err)
	assert.Equal(t, "09:15", ts.String())

	ts, err = NewTimeStringFromMinutes(24 * 60)
	require.NoError(t, err)
	assert.Equal(t, "24:00", ts.String())

	_, err = NewTimeStringFromMinutes(24*60 + 1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestMinutes(t *testing.T) {
	ts := TimeString("10:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestComparisons(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))

	// Некорректные значения несравнимы
	assert.False(t, TimeString("bad").IsBefore(b))
	assert.False(t, a.IsBefore(TimeString("bad")))
}

func TestAddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	result, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "11:30", result.String())

	result, err = ts.AddMinutes(14 * 60)
	require.NoError(t, err)
	assert.Equal(t, "24:00", result.String())

	_, err = ts.AddMinutes(14*60 + 1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestMinutesUntil(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("10:30")

	d, err := a.MinutesUntil(b)
	require.NoError(t, err)
	assert.Equal(t, 90, d)

	d, err = b.MinutesUntil(a)
	require.NoError(t, err)
	assert.Equal(t, -90, d)
}

func TestOnDate(t *testing.T) {
	date := time.Date(2026, 9, 7, 15, 45, 0, 0, time.UTC) // время в дате игнорируется
	ts := TimeString("10:30")

	result, err := ts.OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC), result)
}

func TestScan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan([]byte("09:15")))
	assert.Equal(t, "09:15", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 9, 7, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, "14:45", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
	assert.Error(t, ts.Scan("bogus"))
}

func TestValue(t *testing.T) {
	v, err := TimeString("10:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:30", v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
