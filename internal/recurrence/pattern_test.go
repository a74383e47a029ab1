package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPatternValidate(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		wantErr bool
	}{
		{"weekly with days", Pattern{Frequency: Weekly, DaysOfWeek: []time.Weekday{time.Monday}, EndType: EndNever}, false},
		{"weekly without days falls back to anchor weekday", Pattern{Frequency: Weekly, EndType: EndNever}, false},
		{"monthly", Pattern{Frequency: Monthly, DayOfMonth: 15, EndType: EndNever}, false},
		{"monthly day out of range", Pattern{Frequency: Monthly, DayOfMonth: 32, EndType: EndNever}, true},
		{"unknown frequency", Pattern{Frequency: "daily", EndType: EndNever}, true},
		{"unknown end type", Pattern{Frequency: Weekly, EndType: "sometime"}, true},
		{"on_date without date", Pattern{Frequency: Weekly, EndType: EndOnDate}, true},
		{"on_date with date", Pattern{Frequency: Weekly, EndType: EndOnDate, EndDate: date(2024, 6, 1)}, false},
		{"occurrences without count", Pattern{Frequency: Weekly, EndType: EndAfterOccurrences}, true},
		{"occurrences with count", Pattern{Frequency: Weekly, EndType: EndAfterOccurrences, Occurrences: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pattern.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandWeeklyMondays(t *testing.T) {
	// Parent scheduled 2024-01-01 (a Monday), weekly on Mondays, no end.
	p := Pattern{Frequency: Weekly, DaysOfWeek: []time.Weekday{time.Monday}, EndType: EndNever}
	anchor := date(2024, 1, 1)

	got := Expand(p, anchor, anchor, date(2024, 4, 1), 0)

	require.NotEmpty(t, got)
	assert.Equal(t, date(2024, 1, 1), got[0])
	assert.Equal(t, date(2024, 4, 1), got[len(got)-1])
	// Jan 1 through Apr 1 2024 contains 14 Mondays.
	assert.Len(t, got, 14)
	for _, d := range got {
		assert.Equal(t, time.Monday, d.Weekday())
	}
}

func TestExpandWeeklyFallsBackToAnchorWeekday(t *testing.T) {
	p := Pattern{Frequency: Weekly, EndType: EndNever}
	anchor := date(2024, 1, 3) // Wednesday

	got := Expand(p, anchor, anchor, date(2024, 1, 31), 0)

	require.Len(t, got, 5)
	for _, d := range got {
		assert.Equal(t, time.Wednesday, d.Weekday())
	}
}

func TestExpandBiweeklyAnchoredStride(t *testing.T) {
	p := Pattern{Frequency: Biweekly, DaysOfWeek: []time.Weekday{time.Monday}, EndType: EndNever}
	anchor := date(2024, 1, 1)

	got := Expand(p, anchor, anchor, date(2024, 2, 26), 0)

	assert.Equal(t, []time.Time{
		date(2024, 1, 1),
		date(2024, 1, 15),
		date(2024, 1, 29),
		date(2024, 2, 12),
		date(2024, 2, 26),
	}, got)
}

func TestExpandMonthlyClampsShortMonths(t *testing.T) {
	p := Pattern{Frequency: Monthly, DayOfMonth: 31, EndType: EndNever}
	anchor := date(2024, 1, 31)

	got := Expand(p, anchor, anchor, date(2024, 4, 30), 0)

	assert.Equal(t, []time.Time{
		date(2024, 1, 31),
		date(2024, 2, 29), // leap year
		date(2024, 3, 31),
		date(2024, 4, 30),
	}, got)
}

func TestExpandStopsAtEndDate(t *testing.T) {
	p := Pattern{
		Frequency:  Weekly,
		DaysOfWeek: []time.Weekday{time.Monday},
		EndType:    EndOnDate,
		EndDate:    date(2024, 1, 15),
	}
	anchor := date(2024, 1, 1)

	got := Expand(p, anchor, anchor, date(2024, 4, 1), 0)

	// End date itself still produces an occurrence.
	assert.Equal(t, []time.Time{date(2024, 1, 1), date(2024, 1, 8), date(2024, 1, 15)}, got)
}

func TestExpandOccurrenceCap(t *testing.T) {
	p := Pattern{
		Frequency:   Weekly,
		DaysOfWeek:  []time.Weekday{time.Monday},
		EndType:     EndAfterOccurrences,
		Occurrences: 5,
	}
	anchor := date(2024, 1, 1)

	got := Expand(p, anchor, anchor, date(2024, 12, 31), 0)
	assert.Len(t, got, 5)

	// Previously generated instances count against the cap.
	got = Expand(p, anchor, date(2024, 2, 1), date(2024, 12, 31), 3)
	assert.Len(t, got, 2)

	// Cap already reached: nothing left to generate.
	got = Expand(p, anchor, date(2024, 2, 1), date(2024, 12, 31), 5)
	assert.Empty(t, got)
}

func TestExpandEmptyWindow(t *testing.T) {
	p := Pattern{Frequency: Weekly, DaysOfWeek: []time.Weekday{time.Monday}, EndType: EndNever}
	anchor := date(2024, 1, 1)

	assert.Empty(t, Expand(p, anchor, date(2024, 2, 1), date(2024, 1, 1), 0))
}

func TestExpandNothingBeforeAnchor(t *testing.T) {
	p := Pattern{Frequency: Weekly, DaysOfWeek: []time.Weekday{time.Monday}, EndType: EndNever}
	anchor := date(2024, 3, 4)

	got := Expand(p, anchor, date(2024, 1, 1), date(2024, 3, 18), 0)

	assert.Equal(t, []time.Time{date(2024, 3, 4), date(2024, 3, 11), date(2024, 3, 18)}, got)
}
