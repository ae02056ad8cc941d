package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "08:30", want: 510},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, TimeOfDay(tc.want), got, tc.in)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "08:05", MustTimeOfDay("08:05").String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "23:59", TimeOfDay(1439).String())
}

func TestAddMinutesWraps(t *testing.T) {
	tests := []struct {
		start string
		add   int
		want  string
	}{
		{"08:00", 60, "09:00"},
		{"23:30", 45, "00:15"},
		{"00:15", -30, "23:45"},
		{"12:00", 1440, "12:00"},
		{"12:00", -2880, "12:00"},
		{"00:00", -1, "23:59"},
	}
	for _, tc := range tests {
		got := AddMinutes(MustTimeOfDay(tc.start), tc.add)
		assert.Equal(t, tc.want, got.String(), "%s + %d", tc.start, tc.add)
	}
}

func TestAddMinutesRoundTrip(t *testing.T) {
	// Adding then subtracting any shift lands back on the original time and
	// never leaves the 00:00-23:59 range.
	times := []TimeOfDay{0, 1, 510, 719, 1439}
	shifts := []int{0, 1, 59, 60, 1439, 1440, 100000, -1, -1440, -99999}
	for _, start := range times {
		for _, m := range shifts {
			shifted := AddMinutes(start, m)
			assert.True(t, shifted.Valid(), "shifted %s by %d", start, m)
			assert.Equal(t, start, AddMinutes(shifted, -m), "round trip %s by %d", start, m)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := DateStamp("2025-02-03")
	assert.Equal(t, 0, DaysBetween(a, a))
	assert.Equal(t, 7, DaysBetween(a, "2025-02-10"))
	assert.Equal(t, 7, DaysBetween("2025-02-10", a), "symmetric")
	assert.Equal(t, 31, DaysBetween("2025-01-01", "2025-02-01"))
	// Across a leap day.
	assert.Equal(t, 2, DaysBetween("2024-02-28", "2024-03-01"))
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, Monday, WeekdayOf("2025-02-03"))
	assert.Equal(t, Sunday, WeekdayOf("2025-02-02"))
	assert.Equal(t, Saturday, WeekdayOf("2025-02-08"))
}

func TestParseDateStamp(t *testing.T) {
	d, err := ParseDateStamp("2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, 3, d.DayOfMonth())

	_, err = ParseDateStamp("2025-13-01")
	assert.Error(t, err)
	_, err = ParseDateStamp("03/02/2025")
	assert.Error(t, err)
}

func TestDateStampOrdering(t *testing.T) {
	// Lexical comparison of ISO dates is chronological; the block recurrence
	// gate relies on this.
	assert.True(t, DateStamp("2025-02-03") < DateStamp("2025-02-10"))
	assert.True(t, DateStamp("2024-12-31") < DateStamp("2025-01-01"))
}
