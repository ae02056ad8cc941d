package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeeklySchedule(t *testing.T) {
	ws := DefaultWeeklySchedule()

	for w := Monday; w <= Friday; w++ {
		day := ws.Day(w)
		assert.True(t, day.Active, w.String())
		assert.Equal(t, "08:00", day.Open.String())
		assert.Equal(t, "17:00", day.Close.String())
		assert.Empty(t, day.Breaks)
	}
	assert.False(t, ws.Day(Saturday).Active)
	assert.False(t, ws.Day(Sunday).Active)

	require.NoError(t, ws.Validate())
}

func TestWeeklyScheduleCopyOnWrite(t *testing.T) {
	ws := DefaultWeeklySchedule()
	snapshot := ws.Day(Monday)

	updated := ws.SetDayHours(Monday, MustTimeOfDay("09:00"), MustTimeOfDay("18:00"))
	updated = updated.AddBreak(Monday, Break{ID: "b1", Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("13:00")})

	// The original value and the earlier snapshot are untouched.
	assert.Equal(t, "08:00", ws.Day(Monday).Open.String())
	assert.Equal(t, "08:00", snapshot.Open.String())
	assert.Empty(t, ws.Day(Monday).Breaks)

	assert.Equal(t, "09:00", updated.Day(Monday).Open.String())
	assert.Len(t, updated.Day(Monday).Breaks, 1)
}

func TestBreakMutations(t *testing.T) {
	ws := DefaultWeeklySchedule().
		AddBreak(Tuesday, Break{ID: "b1", Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("13:00")}).
		AddBreak(Tuesday, Break{ID: "b2", Start: MustTimeOfDay("15:00"), End: MustTimeOfDay("15:30")})

	ws = ws.UpdateBreak(Tuesday, "b2", "end", MustTimeOfDay("16:00"))
	day := ws.Day(Tuesday)
	require.Len(t, day.Breaks, 2)
	assert.Equal(t, "16:00", day.Breaks[1].End.String())

	ws = ws.RemoveBreak(Tuesday, "b1")
	day = ws.Day(Tuesday)
	require.Len(t, day.Breaks, 1)
	assert.Equal(t, "b2", day.Breaks[0].ID)

	// Unknown ids are silent no-ops.
	before := ws.Day(Tuesday)
	ws = ws.RemoveBreak(Tuesday, "missing")
	ws = ws.UpdateBreak(Tuesday, "missing", "start", MustTimeOfDay("10:00"))
	assert.Equal(t, before, ws.Day(Tuesday))
}

func TestValidateDay(t *testing.T) {
	base := DaySchedule{
		Active: true,
		Open:   MustTimeOfDay("08:00"),
		Close:  MustTimeOfDay("17:00"),
	}

	t.Run("inactive days always pass", func(t *testing.T) {
		d := DaySchedule{Active: false, Open: MustTimeOfDay("17:00"), Close: MustTimeOfDay("08:00")}
		assert.NoError(t, ValidateDay(d))
	})

	t.Run("open after close", func(t *testing.T) {
		d := base
		d.Open = MustTimeOfDay("18:00")
		var fe *FieldError
		require.ErrorAs(t, ValidateDay(d), &fe)
		assert.Equal(t, "open", fe.Field)
	})

	t.Run("break outside hours", func(t *testing.T) {
		d := base
		d.Breaks = []Break{{ID: "b1", Start: MustTimeOfDay("07:00"), End: MustTimeOfDay("08:30")}}
		var fe *FieldError
		require.ErrorAs(t, ValidateDay(d), &fe)
		assert.Equal(t, "breaks[0]", fe.Field)
	})

	t.Run("inverted break", func(t *testing.T) {
		d := base
		d.Breaks = []Break{{ID: "b1", Start: MustTimeOfDay("13:00"), End: MustTimeOfDay("12:00")}}
		var fe *FieldError
		require.ErrorAs(t, ValidateDay(d), &fe)
		assert.Equal(t, "breaks[0].start", fe.Field)
	})

	t.Run("overlapping breaks", func(t *testing.T) {
		d := base
		d.Breaks = []Break{
			{ID: "b1", Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("13:00")},
			{ID: "b2", Start: MustTimeOfDay("12:30"), End: MustTimeOfDay("14:00")},
		}
		var fe *FieldError
		require.ErrorAs(t, ValidateDay(d), &fe)
		assert.Equal(t, "breaks[1]", fe.Field)
	})

	t.Run("touching breaks are fine", func(t *testing.T) {
		d := base
		d.Breaks = []Break{
			{ID: "b1", Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("13:00")},
			{ID: "b2", Start: MustTimeOfDay("13:00"), End: MustTimeOfDay("13:30")},
		}
		assert.NoError(t, ValidateDay(d))
	})
}

func TestParseWeekday(t *testing.T) {
	w, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, Monday, w)

	w, err = ParseWeekday("Saturday")
	require.NoError(t, err)
	assert.Equal(t, Saturday, w)

	_, err = ParseWeekday("moonday")
	assert.Error(t, err)
}
