package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/OneZee23/calendar-summary/pkg/dom"
	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/PuerkitoBio/goquery"
)

// Numeric date layouts seen in data attributes and page URLs. The dotted
// form is the Russian UI's rendering of numeric dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"20060102",
	time.RFC3339,
}

// resolveDate runs the date recovery cascade for one candidate. Every step
// may fail on sparse markup; the last one cannot, so every candidate gets a
// date and the plausibility check in validation decides whether to keep it.
func (x *Extractor) resolveDate(sel *goquery.Selection, timeText, label string) time.Time {
	for _, text := range []string{timeText, label} {
		if t, ok := x.dateFromText(text); ok {
			return t
		}
	}
	if t, ok := x.climbDateAttr(sel); ok {
		return t
	}
	if t, ok := x.climbDateishAttrs(sel); ok {
		return t
	}
	if t, ok := x.dateFromColumns(sel); ok {
		return t
	}
	if t, ok := parseNumericDate(x.snap.DateParam()); ok {
		return t
	}
	return event.Midnight(x.clock.Now())
}

// dateFromText pulls a written-out date ("10 января 2025", "January 10") out
// of free text. A missing year means the current one.
func (x *Extractor) dateFromText(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	for _, loc := range x.locales {
		for _, re := range []*regexp.Regexp{loc.DayMonthRe, loc.MonthDayRe} {
			if re == nil {
				continue
			}
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			day, err := strconv.Atoi(m[re.SubexpIndex("day")])
			if err != nil {
				continue
			}
			month, ok := loc.Months[strings.ToLower(m[re.SubexpIndex("month")])]
			if !ok {
				continue
			}
			year := x.clock.Now().Year()
			if ys := m[re.SubexpIndex("year")]; ys != "" {
				year, _ = strconv.Atoi(ys)
			}
			t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
			// normalization of an impossible day (Feb 31) shifts the
			// month, which marks the match as noise
			if t.Day() != day || t.Month() != month {
				continue
			}
			// an implausible year still resolves: the candidate wrote
			// that date out, so validation must see it and drop the
			// whole event instead of guessing another date
			return t, true
		}
	}
	return time.Time{}, false
}

// climbDateAttr looks for the dedicated date attribute on the candidate and
// its ancestors.
func (x *Extractor) climbDateAttr(sel *goquery.Selection) (time.Time, bool) {
	cur := sel
	for depth := 0; depth <= maxAncestorClimb && cur.Length() > 0; depth++ {
		if raw, ok := cur.Attr(dom.AttrDate); ok {
			if t, ok2 := parseNumericDate(raw); ok2 {
				return t, true
			}
		}
		cur = cur.Parent()
	}
	return time.Time{}, false
}

// climbDateishAttrs tries the weaker date carriers: day attributes and epoch
// start times.
func (x *Extractor) climbDateishAttrs(sel *goquery.Selection) (time.Time, bool) {
	cur := sel
	for depth := 0; depth <= maxAncestorClimb && cur.Length() > 0; depth++ {
		if raw, ok := cur.Attr(dom.AttrDay); ok {
			if t, ok2 := parseNumericDate(raw); ok2 {
				return t, true
			}
		}
		if raw, ok := cur.Attr(dom.AttrStartTime); ok {
			if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
				if t, ok2 := epochTime(n); ok2 && event.ValidDate(t) {
					return event.Midnight(t), true
				}
			}
		}
		cur = cur.Parent()
	}
	return time.Time{}, false
}

// dateFromColumns matches the candidate's horizontal position against dated
// column headers. This is the week-grid case where nothing on the event
// itself says which day it belongs to.
func (x *Extractor) dateFromColumns(sel *goquery.Selection) (time.Time, bool) {
	rect, ok := nearestRect(sel)
	if !ok {
		return time.Time{}, false
	}
	center := rect.Center()

	var found time.Time
	var matched bool
	x.snap.Doc.Find("[" + dom.AttrDate + "]").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !isColumnHeader(h) {
			return true
		}
		headerRect, ok2 := dom.NodeRect(h)
		if !ok2 || !headerRect.Contains(center) {
			return true
		}
		if t, ok3 := parseNumericDate(h.AttrOr(dom.AttrDate, "")); ok3 {
			found = t
			matched = true
			return false
		}
		return true
	})
	return found, matched
}

// isColumnHeader separates day headers from events, which in a grid carry
// date attributes of their own and must not capture their neighbors.
func isColumnHeader(sel *goquery.Selection) bool {
	if goquery.NodeName(sel) == "th" {
		return true
	}
	if role, _ := sel.Attr("role"); role == "columnheader" {
		return true
	}
	cls := strings.ToLower(sel.AttrOr("class", ""))
	return strings.Contains(cls, "column") || strings.Contains(cls, "header")
}

// nearestRect finds capture geometry for the candidate, climbing when the
// candidate node itself was not annotated.
func nearestRect(sel *goquery.Selection) (dom.Rect, bool) {
	cur := sel
	for depth := 0; depth <= maxAncestorClimb && cur.Length() > 0; depth++ {
		if rect, ok := dom.NodeRect(cur); ok {
			return rect, true
		}
		cur = cur.Parent()
	}
	return dom.Rect{}, false
}

// parseNumericDate parses machine-formatted dates, normalized to local
// midnight. Implausible years fail the parse.
func parseNumericDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err != nil {
			continue
		}
		t = event.Midnight(t)
		if event.ValidDate(t) {
			return t, true
		}
	}
	return time.Time{}, false
}
