package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleBlock(date DateStamp, start, end string) BlockEntry {
	return BlockEntry{
		Date:   date,
		Start:  MustTimeOfDay(start),
		End:    MustTimeOfDay(end),
		Reason: "holiday",
		Kind:   BlockSingle,
	}
}

func TestRegistryAddAssignsID(t *testing.T) {
	var reg Registry
	reg, stored, err := reg.Add(singleBlock("2025-02-03", "14:00", "15:00"))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	require.Len(t, reg.Entries, 1)
	assert.Equal(t, stored, reg.Entries[0])

	// A second add gets a distinct id; entries are never merged.
	reg, second, err := reg.Add(singleBlock("2025-02-03", "14:00", "15:00"))
	require.NoError(t, err)
	assert.NotEqual(t, stored.ID, second.ID)
	assert.Len(t, reg.Entries, 2)
}

func TestRegistryAddValidates(t *testing.T) {
	var reg Registry

	tests := []struct {
		name  string
		entry BlockEntry
		field string
	}{
		{
			name:  "inverted range",
			entry: singleBlock("2025-02-03", "15:00", "14:00"),
			field: "start",
		},
		{
			name: "missing reason",
			entry: BlockEntry{
				Date: "2025-02-03", Start: MustTimeOfDay("14:00"), End: MustTimeOfDay("15:00"),
				Kind: BlockSingle,
			},
			field: "reason",
		},
		{
			name: "bad date",
			entry: BlockEntry{
				Date: "03/02/2025", Start: MustTimeOfDay("14:00"), End: MustTimeOfDay("15:00"),
				Reason: "x", Kind: BlockSingle,
			},
			field: "date",
		},
		{
			name: "recurring without recurrence",
			entry: BlockEntry{
				Date: "2025-02-03", Start: MustTimeOfDay("14:00"), End: MustTimeOfDay("15:00"),
				Reason: "x", Kind: BlockRecurring,
			},
			field: "recurrence",
		},
		{
			name: "single with recurrence",
			entry: BlockEntry{
				Date: "2025-02-03", Start: MustTimeOfDay("14:00"), End: MustTimeOfDay("15:00"),
				Reason: "x", Kind: BlockSingle, Recurrence: RecurWeekly,
			},
			field: "recurrence",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := reg.Add(tc.entry)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
			assert.Empty(t, out.Entries, "no partial record is created")
		})
	}
}

func TestRegistryRemove(t *testing.T) {
	var reg Registry
	reg, stored, err := reg.Add(singleBlock("2025-02-03", "14:00", "15:00"))
	require.NoError(t, err)

	reg = reg.Remove("unknown")
	assert.Len(t, reg.Entries, 1, "unknown id is a no-op")

	reg = reg.Remove(stored.ID)
	assert.Empty(t, reg.Entries)
}

func TestMatchesSingle(t *testing.T) {
	e := singleBlock("2025-02-03", "14:00", "15:00")
	assert.True(t, Matches(e, "2025-02-03"))
	assert.False(t, Matches(e, "2025-02-10"), "same weekday, different date")
	assert.False(t, Matches(e, "2025-02-04"))
}

func TestMatchesWeekly(t *testing.T) {
	e := BlockEntry{
		Date: "2025-02-03", Start: MustTimeOfDay("14:00"), End: MustTimeOfDay("15:00"),
		Reason: "weekly meeting", Kind: BlockRecurring, Recurrence: RecurWeekly,
	}
	assert.True(t, Matches(e, "2025-02-03"), "anchor itself")
	assert.True(t, Matches(e, "2025-02-10"), "next monday")
	assert.True(t, Matches(e, "2026-06-01"), "a monday far in the future")
	assert.False(t, Matches(e, "2025-02-04"), "tuesday")
	assert.False(t, Matches(e, "2025-01-27"), "monday before the anchor")
}

func TestMatchesMonthly(t *testing.T) {
	e := BlockEntry{
		Date: "2025-02-03", Start: MustTimeOfDay("14:00"), End: MustTimeOfDay("15:00"),
		Reason: "monthly close", Kind: BlockRecurring, Recurrence: RecurMonthly,
	}
	assert.True(t, Matches(e, "2025-02-03"))
	assert.True(t, Matches(e, "2025-03-03"))
	assert.True(t, Matches(e, "2025-12-03"))
	assert.False(t, Matches(e, "2025-03-04"))
	assert.False(t, Matches(e, "2025-01-03"), "before the anchor")
}

func TestRegistryMatching(t *testing.T) {
	var reg Registry
	reg, _, err := reg.Add(singleBlock("2025-02-03", "14:00", "15:00"))
	require.NoError(t, err)
	reg, _, err = reg.Add(BlockEntry{
		Date: "2025-01-06", Start: MustTimeOfDay("08:00"), End: MustTimeOfDay("09:00"),
		Reason: "rounds", Kind: BlockRecurring, Recurrence: RecurWeekly,
	})
	require.NoError(t, err)

	// 2025-02-03 is a Monday: the single block and the weekly one both apply.
	assert.Len(t, reg.Matching("2025-02-03"), 2)
	assert.Len(t, reg.Matching("2025-02-10"), 1)
	assert.Empty(t, reg.Matching("2025-02-04"))
}
