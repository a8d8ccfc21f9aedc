package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Plausibility window for recovered dates. Heuristic date recovery can latch
// onto arbitrary numbers in rendered text, so years outside this window mark
// the whole event as garbage.
const (
	MinYear = 1900
	MaxYear = 2100
)

const minutesPerDay = 24 * 60

// CalendarEvent is one event recovered from a rendered calendar page.
// StartMinutes and EndMinutes count from local midnight of Date, which is
// itself normalized to local midnight. EndMinutes may be 1440 for events
// running to the end of the day.
type CalendarEvent struct {
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	StartMinutes int       `json:"startMinutes"`
	EndMinutes   int       `json:"endMinutes"`
	Color        string    `json:"color,omitempty"`
}

// DurationMinutes is always positive for a valid event.
func (e CalendarEvent) DurationMinutes() int {
	return e.EndMinutes - e.StartMinutes
}

// StartTime materializes the start offset onto the event date.
func (e CalendarEvent) StartTime() time.Time {
	return e.Date.Add(time.Duration(e.StartMinutes) * time.Minute)
}

// EndTime materializes the end offset onto the event date.
func (e CalendarEvent) EndTime() time.Time {
	return e.Date.Add(time.Duration(e.EndMinutes) * time.Minute)
}

// Day returns the event date in ISO day form, the shape used by dedup keys
// and storage.
func (e CalendarEvent) Day() string {
	return e.Date.Format("2006-01-02")
}

// Validate checks the invariants every stored or summarized event must hold.
func (e CalendarEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("event has no title")
	}
	if !ValidDate(e.Date) {
		return fmt.Errorf("event date %s is outside the plausible year range", e.Date.Format(time.RFC3339))
	}
	if e.StartMinutes < 0 || e.StartMinutes >= minutesPerDay {
		return fmt.Errorf("start minutes %d out of range", e.StartMinutes)
	}
	if e.EndMinutes <= e.StartMinutes || e.EndMinutes > minutesPerDay {
		return fmt.Errorf("end minutes %d must be after start %d and within the day", e.EndMinutes, e.StartMinutes)
	}
	return nil
}

// ValidDate reports whether a recovered date falls into the plausible year
// window. The zero time fails it.
func ValidDate(t time.Time) bool {
	return t.Year() >= MinYear && t.Year() <= MaxYear
}

// Midnight normalizes a timestamp to local midnight of its day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateRange bounds a query by inclusive calendar days. A zero From or To
// leaves that side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the day of t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	day := Midnight(t)
	if !r.From.IsZero() && day.Before(Midnight(r.From)) {
		return false
	}
	if !r.To.IsZero() && day.After(Midnight(r.To)) {
		return false
	}
	return true
}

// FilterByRange keeps only events whose date falls inside the range. A nil
// range keeps everything.
func FilterByRange(events []CalendarEvent, r *DateRange) []CalendarEvent {
	if r == nil {
		return events
	}
	out := make([]CalendarEvent, 0, len(events))
	for _, e := range events {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
