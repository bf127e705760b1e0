package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("14:30")
	require.NoError(t, err)
	assert.Equal(t, "14:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NewTimeStringFromString("2pm")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Compare(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:45")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), next)

	// crossing midnight is not supported
	_, err = TimeString("23:50").AddMinutes(20)
	assert.Error(t, err)
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("14:00").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC), at)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:05")))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 16, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:45"), ts)

	assert.ErrorIs(t, ts.Scan(42), ErrInvalidScanType)
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("14:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "14:30", v)

	_, err = TimeString("garbage").Value()
	assert.Error(t, err)
}
