package run

import (
	"fmt"
	"time"

	"github.com/OneZee23/calendar-summary/pkg/event"
	ical "github.com/arran4/golang-ical"
)

// RenderICS serializes the events of a run as an iCalendar document. Event
// times are local wall-clock readings recovered from the page, so they are
// exported in the local timezone.
func RenderICS(runID string, events []event.CalendarEvent) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//calendar-summary//run-export//EN")

	now := time.Now()
	for i, e := range events {
		ve := cal.AddEvent(fmt.Sprintf("%s-%d@calendar-summary", runID, i))
		ve.SetDtStampTime(now)
		ve.SetSummary(e.Title)
		ve.SetStartAt(e.StartTime())
		ve.SetEndAt(e.EndTime())
		if e.Color != "" {
			ve.SetColor(e.Color)
		}
	}

	return cal.Serialize()
}
