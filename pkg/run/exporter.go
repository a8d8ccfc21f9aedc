package run

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/OneZee23/calendar-summary/internal/event_bus"
	"github.com/OneZee23/calendar-summary/pkg/summary"
	log "github.com/sirupsen/logrus"
)

// ArtifactExporter writes the artifacts of each completed run (a CSV summary
// and an ICS export) into a fixed directory, replacing the previous run's
// files.
type ArtifactExporter struct {
	dir         string
	csvRenderer summary.CsvSummaryRenderer
}

func NewArtifactExporter(dir string, csvRenderer summary.CsvSummaryRenderer, eventBus *event_bus.EventBus) *ArtifactExporter {
	e := &ArtifactExporter{dir: dir, csvRenderer: csvRenderer}
	event_bus.SubscribeTyped[event_bus.RunCompleted](
		eventBus,
		"run.completed",
		func(ev event_bus.EventT[event_bus.RunCompleted]) error {
			return e.Export(ev.Data)
		},
	)
	return e
}

// Export writes summary.csv and events.ics for one completed run.
func (e *ArtifactExporter) Export(completed event_bus.RunCompleted) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("could not create export directory %s: %w", e.dir, err)
	}

	result := summary.Result{
		Mode:      summary.ModeByName,
		Events:    completed.Events,
		Summaries: summary.Summarize(completed.Events, summary.ModeByName),
	}
	csvData, err := e.csvRenderer.Render(result)
	if err != nil {
		return fmt.Errorf("could not render summary CSV: %w", err)
	}
	csvPath := filepath.Join(e.dir, "summary.csv")
	if err := os.WriteFile(csvPath, []byte(csvData), 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", csvPath, err)
	}

	icsPath := filepath.Join(e.dir, "events.ics")
	if err := os.WriteFile(icsPath, []byte(RenderICS(completed.RunID, completed.Events)), 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", icsPath, err)
	}

	log.Infof("exported artifacts of run %s to %s", completed.RunID, e.dir)
	return nil
}
