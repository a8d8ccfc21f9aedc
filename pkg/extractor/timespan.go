package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/OneZee23/calendar-summary/pkg/dom"
	"github.com/OneZee23/calendar-summary/pkg/locale"
	"github.com/PuerkitoBio/goquery"
)

const minutesPerDay = 24 * 60

// Epoch attribute thresholds. Rendered markup writes machine times either as
// minutes since midnight, epoch seconds or epoch milliseconds; magnitude is
// the only way to tell them apart.
const (
	epochSecondsFloor = int64(1e9)
	epochMillisFloor  = int64(1e11)
)

// Clock text comes in three shapes: "9:30" with optional AM/PM, "9 AM" with
// mandatory meridiem, and nothing else. A bare number is never a time.
var clockTokenRe = regexp.MustCompile(
	`(?i)\b(\d{1,2}):(\d{2})\s*([ap])\.?m\.?|\b(\d{1,2})\s*([ap])\.?m\.?|\b(\d{1,2}):(\d{2})`)

// genericRangeRe catches "9:30 AM - 10:00 AM" style ranges joined by any of
// the dash characters rendered calendars use.
var genericRangeRe = regexp.MustCompile(
	`(?i)\b(\d{1,2})(?::(\d{2}))?(?:\s*([ap])\.?m\.?)?\s*[-–—−~]\s*(\d{1,2})(?::(\d{2}))?(?:\s*([ap])\.?m\.?)?`)

// HasTimeToken reports whether the text contains at least one clock reading.
func HasTimeToken(s string) bool {
	return clockTokenRe.MatchString(s)
}

// ClockTokens returns every clock reading in the text as minutes since
// midnight, in order of appearance.
func ClockTokens(s string) []int {
	matches := clockTokenRe.FindAllStringSubmatch(s, -1)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		var h, mm int
		var mer string
		switch {
		case m[1] != "":
			h, _ = strconv.Atoi(m[1])
			mm, _ = strconv.Atoi(m[2])
			mer = m[3]
		case m[4] != "":
			h, _ = strconv.Atoi(m[4])
			mer = m[5]
		default:
			h, _ = strconv.Atoi(m[6])
			mm, _ = strconv.Atoi(m[7])
		}
		if v, ok := tokenMinutes(h, mm, mer); ok {
			out = append(out, v)
		}
	}
	return out
}

// tokenMinutes converts one clock reading to minutes since midnight.
// 12 AM is midnight, 12 PM is noon, other PM hours shift by twelve.
func tokenMinutes(h, m int, mer string) (int, bool) {
	if m < 0 || m > 59 {
		return 0, false
	}
	switch strings.ToLower(mer) {
	case "a":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h == 12 {
			h = 0
		}
	case "p":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h != 12 {
			h += 12
		}
	default:
		if h < 0 || h > 23 {
			return 0, false
		}
	}
	return h*60 + m, true
}

// resolveSpan recovers start and end minutes for one candidate, in priority
// order: machine time attributes, the worded locale ranges, generic dash
// ranges, and finally the first two clock readings of the accessible label.
func (x *Extractor) resolveSpan(sel *goquery.Selection, timeText, label string) (int, int, bool) {
	if start, ok := attrTime(sel, dom.AttrStartTime); ok {
		if end, ok2 := attrTime(sel, dom.AttrEndTime); ok2 {
			if s, e, valid := boundSpan(start, end); valid {
				return s, e, true
			}
		}
	}
	for _, text := range []string{timeText, label} {
		if s, e, ok := parseWordedRange(text, x.locales); ok {
			return s, e, true
		}
	}
	for _, text := range []string{timeText, label} {
		if s, e, ok := parseGenericRange(text); ok {
			return s, e, true
		}
	}
	if tokens := ClockTokens(label); len(tokens) >= 2 {
		if s, e, valid := boundSpan(tokens[0], tokens[1]); valid {
			return s, e, true
		}
	}
	return 0, 0, false
}

// parseWordedRange tries each locale's "from X to Y" wording.
func parseWordedRange(text string, locales []locale.Locale) (int, int, bool) {
	if text == "" {
		return 0, 0, false
	}
	for _, loc := range locales {
		re := loc.RangeRe
		if re == nil {
			continue
		}
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		g := func(name string) string {
			if i := re.SubexpIndex(name); i >= 0 {
				return m[i]
			}
			return ""
		}
		if s, e, ok := assembleRange(g("h1"), g("m1"), g("mer1"), g("h2"), g("m2"), g("mer2")); ok {
			return s, e, true
		}
	}
	return 0, 0, false
}

func parseGenericRange(text string) (int, int, bool) {
	if text == "" {
		return 0, 0, false
	}
	m := genericRangeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	// "5-6" with no minutes and no meridiem on either side is a number
	// range, not a time range
	if m[2] == "" && m[3] == "" && m[5] == "" && m[6] == "" {
		return 0, 0, false
	}
	return assembleRange(m[1], m[2], m[3], m[4], m[5], m[6])
}

// assembleRange converts raw range captures into a valid minute span. A left
// side without AM/PM first tries inheriting the right side's meridiem, the
// way "9:30 – 10PM" renders an evening event; when inheritance inverts the
// span the literal reading wins, which covers "11:30 – 12PM".
func assembleRange(h1s, m1s, mer1, h2s, m2s, mer2 string) (int, int, bool) {
	h1, err1 := strconv.Atoi(h1s)
	h2, err2 := strconv.Atoi(h2s)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	var m1, m2 int
	if m1s != "" {
		m1, _ = strconv.Atoi(m1s)
	}
	if m2s != "" {
		m2, _ = strconv.Atoi(m2s)
	}

	if mer1 == "" && mer2 != "" && h1 >= 1 && h1 <= 12 {
		if s, se := tokenMinutes(h1, m1, mer2); se {
			if e, ee := tokenMinutes(h2, m2, mer2); ee {
				if s2, e2, valid := boundSpan(s, e); valid {
					return s2, e2, true
				}
			}
		}
	}

	s, ok := tokenMinutes(h1, m1, mer1)
	if !ok {
		return 0, 0, false
	}
	e, ok := tokenMinutes(h2, m2, mer2)
	if !ok {
		return 0, 0, false
	}
	return boundSpan(s, e)
}

// boundSpan applies the midnight rule and rejects inverted spans. An end of
// 0:00 after a later start means end of day.
func boundSpan(start, end int) (int, int, bool) {
	if end == 0 && start > 0 {
		end = minutesPerDay
	}
	if start < 0 || start >= minutesPerDay || end <= start || end > minutesPerDay {
		return 0, 0, false
	}
	return start, end, true
}

// attrTime interprets a machine time attribute on the node itself.
func attrTime(sel *goquery.Selection, name string) (int, bool) {
	raw, ok := sel.Attr(name)
	if !ok {
		return 0, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n >= 0 && n <= int64(minutesPerDay) {
			return int(n), true
		}
		if t, ok2 := epochTime(n); ok2 {
			return t.Hour()*60 + t.Minute(), true
		}
		return 0, false
	}
	if tokens := ClockTokens(raw); len(tokens) >= 1 {
		return tokens[0], true
	}
	return 0, false
}

// epochTime maps epoch-sized numbers onto local time. Milliseconds and
// seconds are distinguished by magnitude alone.
func epochTime(n int64) (time.Time, bool) {
	switch {
	case n > epochMillisFloor:
		return time.UnixMilli(n), true
	case n > epochSecondsFloor:
		return time.Unix(n, 0), true
	}
	return time.Time{}, false
}
