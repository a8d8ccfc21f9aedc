package run

import (
	"strings"
	"testing"
	"time"

	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/stretchr/testify/assert"
)

func TestRenderICS(t *testing.T) {
	events := []event.CalendarEvent{
		{
			Title:        "Gym",
			Date:         time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local),
			StartMinutes: 570,
			EndMinutes:   600,
			Color:        "#3f51b5",
		},
		{
			Title:        "Run",
			Date:         time.Date(2025, time.January, 11, 0, 0, 0, 0, time.Local),
			StartMinutes: 1080,
			EndMinutes:   1125,
		},
	}

	ics := RenderICS("7d55a2a0-0000-4000-8000-000000000000", events)

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR"))
	assert.Contains(t, ics, "METHOD:PUBLISH")
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Equal(t, 2, strings.Count(ics, "END:VEVENT"))
	assert.Contains(t, ics, "SUMMARY:Gym")
	assert.Contains(t, ics, "SUMMARY:Run")
	assert.Contains(t, ics, "UID:7d55a2a0-0000-4000-8000-000000000000-0@calendar-summary")
	assert.Contains(t, ics, "UID:7d55a2a0-0000-4000-8000-000000000000-1@calendar-summary")
	// only the first event carries a color property
	assert.Equal(t, 1, strings.Count(ics, "COLOR:"))
	assert.Contains(t, ics, "COLOR:#3f51b5")
}

func TestRenderICS_NoEvents(t *testing.T) {
	ics := RenderICS("7d55a2a0-0000-4000-8000-000000000000", nil)

	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.NotContains(t, ics, "BEGIN:VEVENT")
}
