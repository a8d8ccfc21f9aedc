package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/OneZee23/calendar-summary/internal/utils"
	"github.com/OneZee23/calendar-summary/pkg/dom"
	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/OneZee23/calendar-summary/pkg/locale"
	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// Bounds for the ancestor walks. Rendered trees nest deeply, but an event's
// own information never sits more than a few levels away; beyond that the
// walk starts reading neighboring events.
const (
	maxAncestorClimb  = 10
	titleAncestorSpan = 6
	maxTimeTextLen    = 512
)

// eventClassRe matches class names that advertise an event node. Token
// boundaries keep words like "eventual" out.
var eventClassRe = regexp.MustCompile(`(?i)(?:^|[\s_-])(?:event|appointment)s?(?:[\s_-]|$)`)

// candidate is one node worth trying to turn into an event. slotHour is set
// only for candidates found through an hour-labeled slot, which gives them a
// default one-hour span.
type candidate struct {
	sel      *goquery.Selection
	slotHour int
}

// Extractor recovers calendar events from one rendered-page snapshot.
type Extractor struct {
	snap    *dom.Snapshot
	clock   utils.Clock
	locales []locale.Locale
}

func New(snap *dom.Snapshot, clock utils.Clock, locales []locale.Locale) *Extractor {
	if clock == nil {
		clock = &utils.SystemClock{}
	}
	if len(locales) == 0 {
		locales = locale.All()
	}
	return &Extractor{snap: snap, clock: clock, locales: locales}
}

// Extract runs the scans and the per-candidate recovery pipeline. A broken
// candidate never aborts the page: failures are logged and skipped, and the
// caller deduplicates whatever comes out.
func (x *Extractor) Extract() []event.CalendarEvent {
	candidates := x.collect()
	events := make([]event.CalendarEvent, 0, len(candidates))
	for _, c := range candidates {
		if ev, ok := x.extractOne(c); ok {
			events = append(events, ev)
		}
	}
	log.Debugf("extracted %d events from %d candidates", len(events), len(candidates))
	return events
}

// collect runs the prioritized scans. The first three are alternatives and
// the first one that finds anything wins; the time-slot scan always runs on
// top because grid markup hides some events from the other three.
func (x *Extractor) collect() []candidate {
	var found []candidate
	for _, scan := range []func() []candidate{x.scanEventIDs, x.scanGridButtons, x.scanEventClasses} {
		if found = scan(); len(found) > 0 {
			break
		}
	}
	return append(found, x.scanTimeSlots()...)
}

// scanEventIDs finds nodes that carry the dedicated event identity attribute,
// the strongest marker a rendered calendar leaves behind.
func (x *Extractor) scanEventIDs() []candidate {
	return toCandidates(x.snap.Doc.Find("[" + dom.AttrEventID + "]"))
}

// scanGridButtons finds labeled buttons inside grid cells, the shape week and
// month views render events as.
func (x *Extractor) scanGridButtons() []candidate {
	sel := x.snap.Doc.Find(`[role="gridcell"] [role="button"][aria-label], [role="gridcell"] button[aria-label]`)
	return toCandidates(sel)
}

// scanEventClasses falls back to class-name conventions.
func (x *Extractor) scanEventClasses() []candidate {
	sel := x.snap.Doc.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return eventClassRe.MatchString(s.AttrOr("class", ""))
	})
	return toCandidates(sel)
}

// scanTimeSlots picks up labeled or event-classed nodes inside hour-labeled
// slot containers, plus slots that are labeled themselves.
func (x *Extractor) scanTimeSlots() []candidate {
	var out []candidate
	for _, slot := range x.snap.Doc.Find("[" + dom.AttrHour + "]").EachIter() {
		hour, err := strconv.Atoi(strings.TrimSpace(slot.AttrOr(dom.AttrHour, "")))
		if err != nil || hour < 0 || hour > 23 {
			continue
		}
		inner := slot.Find("[aria-label], [class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			if _, ok := s.Attr(dom.AttrAriaLabel); ok {
				return true
			}
			return eventClassRe.MatchString(s.AttrOr("class", ""))
		})
		for _, s := range inner.EachIter() {
			out = append(out, candidate{sel: s, slotHour: hour})
		}
		if inner.Length() == 0 {
			if _, ok := slot.Attr(dom.AttrAriaLabel); ok {
				out = append(out, candidate{sel: slot, slotHour: hour})
			}
		}
	}
	return out
}

func toCandidates(sel *goquery.Selection) []candidate {
	out := make([]candidate, 0, sel.Length())
	for _, s := range sel.EachIter() {
		out = append(out, candidate{sel: s, slotHour: -1})
	}
	return out
}

// extractOne runs the full recovery pipeline on one candidate. Heuristics
// poking at arbitrary markup can always trip over something unexpected, so a
// panic discards the candidate instead of the page.
func (x *Extractor) extractOne(c candidate) (ev event.CalendarEvent, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("skipping event candidate after panic: %v", r)
			ok = false
		}
	}()

	label := x.climbLabel(c.sel)
	titleAttr := dom.CollapseSpace(c.sel.AttrOr(dom.AttrTitle, ""))
	timeText := x.climbTimeText(c.sel)
	nodeText := dom.CollapseSpace(c.sel.Text())

	title := x.resolveTitle(c.sel, label, titleAttr, timeText, nodeText)
	if title == "" {
		return event.CalendarEvent{}, false
	}

	start, end, spanOK := x.resolveSpan(c.sel, timeText, label)
	if !spanOK {
		if c.slotHour < 0 {
			return event.CalendarEvent{}, false
		}
		start = c.slotHour * 60
		end = start + 60
	}

	e := event.CalendarEvent{
		Title:        title,
		Date:         x.resolveDate(c.sel, timeText, label),
		StartMinutes: start,
		EndMinutes:   end,
		Color:        x.resolveColor(c.sel),
	}
	if err := e.Validate(); err != nil {
		log.Debugf("discarding candidate %q: %v", title, err)
		return event.CalendarEvent{}, false
	}
	return e, true
}

// climbTimeText finds the nearest text containing a clock reading, looking at
// the candidate first and then up the ancestor chain. Oversized texts are
// skipped; near the root an ancestor's text is the whole page.
func (x *Extractor) climbTimeText(sel *goquery.Selection) string {
	cur := sel
	for depth := 0; depth <= maxAncestorClimb && cur.Length() > 0; depth++ {
		if t := dom.CollapseSpace(cur.Text()); t != "" && len(t) <= maxTimeTextLen && HasTimeToken(t) {
			return t
		}
		if l := dom.CollapseSpace(cur.AttrOr(dom.AttrAriaLabel, "")); l != "" && HasTimeToken(l) {
			return l
		}
		cur = cur.Parent()
	}
	return ""
}

// climbLabel finds the nearest accessible label on the candidate or its
// ancestors.
func (x *Extractor) climbLabel(sel *goquery.Selection) string {
	cur := sel
	for depth := 0; depth <= maxAncestorClimb && cur.Length() > 0; depth++ {
		if l := dom.CollapseSpace(cur.AttrOr(dom.AttrAriaLabel, "")); l != "" {
			return l
		}
		cur = cur.Parent()
	}
	return ""
}
