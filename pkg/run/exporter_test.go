package run

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OneZee23/calendar-summary/internal/event_bus"
	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/OneZee23/calendar-summary/pkg/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactExporter_ExportsOnRunCompleted(t *testing.T) {
	// given
	dir := t.TempDir()
	bus := event_bus.NewEventBus()
	NewArtifactExporter(dir, summary.NewCsvSummaryRendererImpl(), bus)

	completed := event_bus.RunCompleted{
		RunID:      "7d55a2a0-0000-4000-8000-000000000000",
		CapturedAt: time.Date(2025, time.January, 10, 8, 0, 0, 0, time.Local),
		PageURL:    "https://cal.example.com/r/week",
		Events: []event.CalendarEvent{
			{Title: "Gym", Date: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local), StartMinutes: 570, EndMinutes: 600, Color: "#3f51b5"},
			{Title: "Gym", Date: time.Date(2025, time.January, 11, 0, 0, 0, 0, time.Local), StartMinutes: 570, EndMinutes: 630, Color: "#3f51b5"},
		},
	}

	// when
	err := bus.Publish(event_bus.NewEvent(context.Background(), "run.completed", completed))

	// then
	require.NoError(t, err)

	csvData, err := os.ReadFile(filepath.Join(dir, "summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "Activity,Duration,Minutes,Events,Color")
	assert.Contains(t, string(csvData), "Gym,1h 30m,90,2,#3f51b5")

	icsData, err := os.ReadFile(filepath.Join(dir, "events.ics"))
	require.NoError(t, err)
	assert.Contains(t, string(icsData), "BEGIN:VCALENDAR")
	assert.Contains(t, string(icsData), "SUMMARY:Gym")
}

func TestArtifactExporter_CreatesExportDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "export")
	exporter := NewArtifactExporter(dir, summary.NewCsvSummaryRendererImpl(), event_bus.NewEventBus())

	err := exporter.Export(event_bus.RunCompleted{RunID: "run-1"})

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "summary.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "events.ics"))
	assert.NoError(t, err)
}
