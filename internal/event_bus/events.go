package event_bus

import (
	"time"

	"github.com/OneZee23/calendar-summary/pkg/event"
)

// RunCompleted is published after a capture run has been extracted,
// deduplicated, and persisted. Subscribers get the surviving events of the
// run, e.g. to write export artifacts.
type RunCompleted struct {
	RunID      string
	CapturedAt time.Time
	PageURL    string
	Events     []event.CalendarEvent
}
