package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"09:00", false},
		{"00:00", false},
		{"23:59", false},
		{"9:00", true},
		{"24:00", true},
		{"12:60", true},
		{"12:00:00", true},
		{"noon", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = TimeString("14:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 870, m)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(870)
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:30"), ts)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), ts)

	// 17:00 plus eight hours leaves the day.
	_, err = TimeString("17:00").AddMinutes(480)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:30"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("09:00:00")))
	assert.Equal(t, TimeString("09:00"), ts)

	moment := time.Date(2026, 3, 13, 16, 45, 12, 0, time.UTC)
	require.NoError(t, ts.Scan(moment))
	assert.Equal(t, TimeString("16:45"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	_, err = TimeString("25:00").Value()
	assert.Error(t, err)
}
