package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotStrings(slots []TimeOfDay) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestGenerateSlotsScenario(t *testing.T) {
	// Monday 08:00-17:00, break 12:00-13:00, single block 14:00-15:00 on
	// 2025-02-03, 60-minute slots.
	r := NewResolver(mondayAgenda(t))

	// 12:00 falls in the break and 14:00 in the block; 13:00 survives both
	// since intervals are half-open.
	slots := GenerateSlots(r, monday, 60)
	assert.Equal(t,
		[]string{"08:00", "09:00", "10:00", "11:00", "13:00", "15:00", "16:00"},
		slotStrings(slots))
}

func TestGenerateSlotsOtherWeeksUnaffectedBySingleBlock(t *testing.T) {
	r := NewResolver(mondayAgenda(t))

	slots := GenerateSlots(r, "2025-02-10", 60)
	assert.Equal(t,
		[]string{"08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"},
		slotStrings(slots))
}

func TestGenerateSlotsInactiveDay(t *testing.T) {
	r := NewResolver(mondayAgenda(t))
	assert.Empty(t, GenerateSlots(r, "2025-02-02", 60), "sunday is off")
}

func TestGenerateSlotsProperties(t *testing.T) {
	r := NewResolver(mondayAgenda(t))

	for _, dur := range []int{15, 30, 45, 60, 90} {
		slots := GenerateSlots(r, monday, dur)
		require.NotEmpty(t, slots, "duration %d", dur)
		for i, s := range slots {
			assert.True(t, r.IsBookable(monday, s), "emitted slot %s must be bookable", s)
			if i > 0 {
				assert.Greater(t, int(s), int(slots[i-1]), "strictly increasing")
				assert.Zero(t, (int(s)-slots[0].Minutes())%dur, "on the %d-minute grid", dur)
			}
		}
	}
}

func TestGenerateSlotsDegenerateDuration(t *testing.T) {
	r := NewResolver(mondayAgenda(t))
	assert.Nil(t, GenerateSlots(r, monday, 0))
	assert.Nil(t, GenerateSlots(r, monday, -30))
}

func TestGenerateSlotsRecomputedAfterChange(t *testing.T) {
	agenda := mondayAgenda(t)
	r := NewResolver(agenda)

	before := GenerateSlots(r, monday, 60)
	require.Contains(t, slotStrings(before), "09:00")

	var err error
	agenda.blocks, _, err = agenda.blocks.Add(BlockEntry{
		Date: monday, Start: MustTimeOfDay("09:00"), End: MustTimeOfDay("10:00"),
		Reason: "errand", Kind: BlockSingle,
	})
	require.NoError(t, err)

	after := GenerateSlots(r, monday, 60)
	assert.NotContains(t, slotStrings(after), "09:00", "no caching between calls")
}
