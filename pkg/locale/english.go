package locale

import (
	"regexp"
	"time"
)

var englishMonthWords = []struct {
	word  string
	month time.Month
}{
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"june", time.June}, {"july", time.July},
	{"august", time.August}, {"september", time.September}, {"october", time.October},
	{"november", time.November}, {"december", time.December},
	{"sept", time.September},
	{"may", time.May},
	{"jan", time.January}, {"feb", time.February}, {"mar", time.March},
	{"apr", time.April}, {"jun", time.June}, {"jul", time.July},
	{"aug", time.August}, {"sep", time.September}, {"oct", time.October},
	{"nov", time.November}, {"dec", time.December},
}

// English builds the secondary locale. Month-day order is the common one here
// ("January 10, 2025"), but day-month ("10 January 2025") is matched too.
func English() Locale {
	months := make(map[string]time.Month, len(englishMonthWords))
	words := make([]string, 0, len(englishMonthWords))
	for _, mw := range englishMonthWords {
		months[mw.word] = mw.month
		words = append(words, mw.word)
	}
	alt := alternation(words)

	return Locale{
		Code:   "en",
		Months: months,
		DayMonthRe: regexp.MustCompile(
			`(?i)(?:^|[^\p{L}\d])(?P<day>\d{1,2})\s+(?P<month>` + alt + `)\.?(?:,?\s+(?P<year>\d{4}))?(?:[^\p{L}\d]|$)`),
		MonthDayRe: regexp.MustCompile(
			`(?i)(?:^|[^\p{L}\d])(?P<month>` + alt + `)\.?\s+(?P<day>\d{1,2})(?:,?\s+(?P<year>\d{4}))?(?:[^\p{L}\d]|$)`),
		RangeRe: regexp.MustCompile(
			`(?i)\bfrom\s+(?P<h1>\d{1,2})(?::(?P<m1>\d{2}))?(?:\s*(?P<mer1>[ap])\.?m\.?)?\s+to\s+(?P<h2>\d{1,2})(?::(?P<m2>\d{2}))?(?:\s*(?P<mer2>[ap])\.?m\.?)?`),
		PlaceholderRe: regexp.MustCompile(
			`(?i)^\s*(?:\+\s*)?\d+\s+(?:more(?:\s+events?)?|events?)\s*$`),
		Weekdays: []string{
			"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
			"mon", "tue", "wed", "thu", "fri", "sat", "sun",
		},
		TodayWords: []string{"today", "tomorrow", "yesterday"},
		MetadataMarkers: []string{
			"calendar:", "location:", "organizer:", "where:", "color:",
		},
	}
}
