package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/OneZee23/calendar-summary/pkg/palette"
)

// Mode selects the grouping axis of a summary report.
type Mode string

const (
	ModeByName  Mode = "byName"
	ModeByColor Mode = "byColor"
)

// ParseMode accepts the wire form of a mode. Empty means grouping by name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeByName):
		return ModeByName, nil
	case string(ModeByColor):
		return ModeByColor, nil
	}
	return "", fmt.Errorf("unknown summary mode %q", s)
}

// ActivitySummary is one aggregated line of a report.
type ActivitySummary struct {
	Name              string
	TotalMinutes      int
	EventCount        int
	FormattedDuration string
	Color             string
}

// Summarize aggregates events along the chosen axis. Lines are ordered by
// descending total time; lines tied on time keep their first-seen order.
// In color mode events without a color count under the default color.
func Summarize(events []event.CalendarEvent, mode Mode) []ActivitySummary {
	type group struct {
		name  string
		total int
		count int
		color string
	}
	var order []string
	groups := make(map[string]*group)

	for _, e := range events {
		var key, name, color string
		switch mode {
		case ModeByColor:
			color = e.Color
			if color == "" {
				color = palette.Default
			}
			key = color
			name = palette.DisplayName(color)
		default:
			key = strings.TrimSpace(e.Title)
			name = key
			color = e.Color
		}

		g, ok := groups[key]
		if !ok {
			g = &group{name: name, color: color}
			groups[key] = g
			order = append(order, key)
		}
		g.total += e.DurationMinutes()
		g.count++
		// in name mode the first colored occurrence names the color
		if g.color == "" {
			g.color = e.Color
		}
	}

	out := make([]ActivitySummary, 0, len(order))
	for _, key := range order {
		g := groups[key]
		out = append(out, ActivitySummary{
			Name:              g.name,
			TotalMinutes:      g.total,
			EventCount:        g.count,
			FormattedDuration: FormatMinutes(g.total),
			Color:             g.color,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalMinutes > out[j].TotalMinutes
	})
	return out
}

// FormatMinutes renders a minute total the way reports show durations:
// "2h", "45m", "1h 30m".
func FormatMinutes(total int) string {
	h := total / 60
	m := total % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// TotalMinutes sums event durations, the conserved quantity every summary
// mode redistributes.
func TotalMinutes(events []event.CalendarEvent) int {
	total := 0
	for _, e := range events {
		total += e.DurationMinutes()
	}
	return total
}
