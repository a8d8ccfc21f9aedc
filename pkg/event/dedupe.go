package event

import (
	log "github.com/sirupsen/logrus"
)

type dedupeKey struct {
	title string
	day   string
	start int
}

// Deduplicate collapses events sharing title, day and start minute, keeping
// the first occurrence. The scan strategies overlap on purpose, so the same
// rendered event is routinely found through more than one node.
//
// Events with an implausible date are dropped here as well; they cannot form
// a stable key and would never survive validation downstream.
func Deduplicate(events []CalendarEvent) []CalendarEvent {
	seen := make(map[dedupeKey]struct{}, len(events))
	out := make([]CalendarEvent, 0, len(events))
	for _, e := range events {
		if !ValidDate(e.Date) {
			log.Debugf("dropping event %q with implausible date %s", e.Title, e.Date)
			continue
		}
		k := dedupeKey{title: e.Title, day: e.Day(), start: e.StartMinutes}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
