package summary

import (
	"testing"
	"time"

	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/OneZee23/calendar-summary/pkg/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		raw  string
		want Mode
		ok   bool
	}{
		{"", ModeByName, true},
		{"byName", ModeByName, true},
		{"byColor", ModeByColor, true},
		{"byWeek", "", false},
	}
	for _, tt := range tests {
		t.Run("mode "+tt.raw, func(t *testing.T) {
			mode, err := ParseMode(tt.raw)

			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, mode)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSummarize_ByName(t *testing.T) {
	// given
	events := []event.CalendarEvent{
		{Title: "Gym", Date: day(2025, time.January, 10), StartMinutes: 420, EndMinutes: 480, Color: "#3f51b5"},
		{Title: "Run", Date: day(2025, time.January, 10), StartMinutes: 500, EndMinutes: 545},
		{Title: "Gym", Date: day(2025, time.January, 11), StartMinutes: 420, EndMinutes: 450},
	}

	// when
	summaries := Summarize(events, ModeByName)

	// then
	require.Len(t, summaries, 2)
	assert.Equal(t, ActivitySummary{
		Name:              "Gym",
		TotalMinutes:      90,
		EventCount:        2,
		FormattedDuration: "1h 30m",
		Color:             "#3f51b5",
	}, summaries[0])
	assert.Equal(t, ActivitySummary{
		Name:              "Run",
		TotalMinutes:      45,
		EventCount:        1,
		FormattedDuration: "45m",
	}, summaries[1])
}

func TestSummarize_ByColor(t *testing.T) {
	// given
	events := []event.CalendarEvent{
		{Title: "Gym", Date: day(2025, time.January, 10), StartMinutes: 420, EndMinutes: 480, Color: "#3f51b5"},
		{Title: "Run", Date: day(2025, time.January, 10), StartMinutes: 500, EndMinutes: 545, Color: "#3f51b5"},
		{Title: "Misc", Date: day(2025, time.January, 10), StartMinutes: 600, EndMinutes: 630},
	}

	// when
	summaries := Summarize(events, ModeByColor)

	// then
	require.Len(t, summaries, 2)
	assert.Equal(t, "Blueberry", summaries[0].Name)
	assert.Equal(t, "#3f51b5", summaries[0].Color)
	assert.Equal(t, 105, summaries[0].TotalMinutes)
	assert.Equal(t, 2, summaries[0].EventCount)

	assert.Equal(t, "Peacock", summaries[1].Name, "colorless events count under the default color")
	assert.Equal(t, palette.Default, summaries[1].Color)
	assert.Equal(t, 30, summaries[1].TotalMinutes)
}

func TestSummarize_ByColorOutsidePalette(t *testing.T) {
	events := []event.CalendarEvent{
		{Title: "Offsite", Date: day(2025, time.January, 10), StartMinutes: 60, EndMinutes: 120, Color: "#123456"},
	}

	summaries := Summarize(events, ModeByColor)

	require.Len(t, summaries, 1)
	assert.Equal(t, "Color #123456", summaries[0].Name, "unknown colors keep their raw value in the label")
	assert.Equal(t, "#123456", summaries[0].Color)
}

func TestSummarize_Ordering(t *testing.T) {
	t.Run("should order by descending total time", func(t *testing.T) {
		events := []event.CalendarEvent{
			{Title: "Short", Date: day(2025, time.January, 10), StartMinutes: 0, EndMinutes: 15},
			{Title: "Long", Date: day(2025, time.January, 10), StartMinutes: 60, EndMinutes: 240},
			{Title: "Medium", Date: day(2025, time.January, 10), StartMinutes: 300, EndMinutes: 360},
		}

		summaries := Summarize(events, ModeByName)

		require.Len(t, summaries, 3)
		assert.Equal(t, "Long", summaries[0].Name)
		assert.Equal(t, "Medium", summaries[1].Name)
		assert.Equal(t, "Short", summaries[2].Name)
	})

	t.Run("should keep first-seen order for ties", func(t *testing.T) {
		events := []event.CalendarEvent{
			{Title: "Alpha", Date: day(2025, time.January, 10), StartMinutes: 0, EndMinutes: 30},
			{Title: "Beta", Date: day(2025, time.January, 10), StartMinutes: 60, EndMinutes: 90},
		}

		summaries := Summarize(events, ModeByName)

		require.Len(t, summaries, 2)
		assert.Equal(t, "Alpha", summaries[0].Name)
		assert.Equal(t, "Beta", summaries[1].Name)
	})
}

func TestSummarize_ConservesTotalTime(t *testing.T) {
	events := []event.CalendarEvent{
		{Title: "A", Date: day(2025, time.January, 10), StartMinutes: 0, EndMinutes: 75, Color: "#d50000"},
		{Title: "B", Date: day(2025, time.January, 10), StartMinutes: 100, EndMinutes: 160},
		{Title: "A", Date: day(2025, time.January, 11), StartMinutes: 0, EndMinutes: 30, Color: "#0b8043"},
	}
	total := TotalMinutes(events)
	require.Equal(t, 165, total)

	for _, mode := range []Mode{ModeByName, ModeByColor} {
		summarized := 0
		for _, s := range Summarize(events, mode) {
			summarized += s.TotalMinutes
		}
		assert.Equal(t, total, summarized, "mode %s must conserve total time", mode)
	}
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, Summarize(nil, ModeByName))
	assert.Empty(t, Summarize([]event.CalendarEvent{}, ModeByColor))
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{90, "1h 30m"},
		{45, "45m"},
		{120, "2h"},
		{60, "1h"},
		{1, "1m"},
		{0, "0m"},
		{1440, "24h"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.minutes))
		})
	}
}
