package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/OneZee23/calendar-summary/pkg/dom"
	"github.com/OneZee23/calendar-summary/pkg/locale"
	"github.com/PuerkitoBio/goquery"
)

// Separators that divide a rendered label into fragments once times are
// stripped. The spaced hyphen form keeps hyphenated titles intact.
var titleSeparators = []string{",", ";", "|", "–", "—", " - "}

// titleFrom recovers an activity title from one text fragment. Rendered
// labels pack time, title, attendees and date into a single string, so the
// fragment is split and stripped until a part passes the validity test.
func titleFrom(text string) string {
	text = dom.CollapseSpace(text)
	if text == "" {
		return ""
	}

	// labels usually lead with the time: "с 13:00 до 13:30, Standup, ..."
	if strings.Contains(text, ",") {
		parts := strings.Split(text, ",")
		for _, part := range parts[1:] {
			if p := strings.TrimSpace(part); isValidTitle(p) {
				return p
			}
		}
	}

	// the reverse order "Title, 10:00 – 13:00" survives stripping instead
	stripped := dom.CollapseSpace(strings.Trim(stripTimes(text), " ,;|–—-"))
	if isValidTitle(stripped) {
		return stripped
	}
	for _, sep := range titleSeparators {
		for _, part := range strings.Split(stripped, sep) {
			if p := strings.TrimSpace(part); isValidTitle(p) {
				return p
			}
		}
	}
	return ""
}

var bareNumberRe = regexp.MustCompile(`^\d+$`)

// isValidTitle rejects every fragment shape that looks like a label but
// cannot be an activity name.
func isValidTitle(s string) bool {
	t := strings.TrimSpace(s)
	if utf8.RuneCountInString(t) < 2 {
		return false
	}
	// bare numbers are day-cell chrome and stray years, never titles
	if bareNumberRe.MatchString(t) {
		return false
	}
	if locale.IsPlaceholder(t) {
		return false
	}
	if locale.IsDateWord(t) {
		return false
	}
	if locale.HasMetadataMarker(t) {
		return false
	}
	if isBareTime(t) {
		return false
	}
	return true
}

// isBareTime reports whether a fragment is nothing but clock or date text.
func isBareTime(s string) bool {
	stripped := stripTimes(s)
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// stripTimes removes worded ranges, clock tokens and textual dates in every
// registered locale, leaving whatever might be a title.
func stripTimes(s string) string {
	for _, loc := range locale.All() {
		if loc.RangeRe != nil {
			s = loc.RangeRe.ReplaceAllString(s, " ")
		}
		if loc.DayMonthRe != nil {
			s = loc.DayMonthRe.ReplaceAllString(s, " ")
		}
		if loc.MonthDayRe != nil {
			s = loc.MonthDayRe.ReplaceAllString(s, " ")
		}
	}
	s = genericRangeRe.ReplaceAllString(s, " ")
	s = clockTokenRe.ReplaceAllString(s, " ")
	return s
}

// resolveTitle tries the candidate's text sources in order and falls back to
// the deep search when those sources are just a collapsed-events counter.
func (x *Extractor) resolveTitle(sel *goquery.Selection, fragments ...string) string {
	for _, f := range fragments {
		if t := titleFrom(f); t != "" {
			return t
		}
	}
	if placeholderIn(fragments) {
		return x.deepTitleSearch(sel)
	}
	return ""
}

func placeholderIn(fragments []string) bool {
	for _, f := range fragments {
		f = dom.CollapseSpace(f)
		if locale.IsPlaceholder(f) {
			return true
		}
		for _, part := range strings.Split(f, ",") {
			if locale.IsPlaceholder(strings.TrimSpace(part)) {
				return true
			}
		}
	}
	return false
}

// deepTitleSearch is the expensive recovery pass for collapsed cells: every
// descendant text and label, then the ancestor chain, checked against the
// same validity rules.
func (x *Extractor) deepTitleSearch(sel *goquery.Selection) string {
	var found string
	sel.Find("*").EachWithBreak(func(_ int, d *goquery.Selection) bool {
		for _, frag := range []string{dom.OwnText(d), d.AttrOr(dom.AttrAriaLabel, ""), d.AttrOr(dom.AttrTitle, "")} {
			if t := titleFrom(frag); t != "" {
				found = t
				return false
			}
		}
		return true
	})
	if found != "" {
		return found
	}

	cur := sel.Parent()
	for depth := 0; depth < titleAncestorSpan && cur.Length() > 0; depth++ {
		for _, frag := range []string{cur.AttrOr(dom.AttrAriaLabel, ""), dom.OwnText(cur)} {
			if t := titleFrom(frag); t != "" {
				return t
			}
		}
		cur = cur.Parent()
	}
	return ""
}
