package locale

import (
	"regexp"
	"strings"
	"time"
)

// Locale bundles the text patterns of one calendar UI language: month-name
// tables for dates written out in text, the "from X to Y" time-range wording,
// the collapsed-events placeholder ("3 events"), and words that mark a text
// fragment as date or calendar metadata rather than an event title.
//
// Patterns use explicit non-letter guards instead of \b because Go's \b is
// ASCII-only and never matches around Cyrillic letters.
type Locale struct {
	Code string

	// Months maps lowercase month words (full, inflected and abbreviated
	// forms) to their month number.
	Months map[string]time.Month

	// DayMonthRe matches "10 января 2025" style dates. Named groups:
	// day, month, year (year optional). Nil when the language does not
	// use this order.
	DayMonthRe *regexp.Regexp

	// MonthDayRe matches "January 10, 2025" style dates. Named groups:
	// month, day, year (year optional). Nil when the language does not
	// use this order.
	MonthDayRe *regexp.Regexp

	// RangeRe matches the worded time range ("с 13:00 до 13:30",
	// "from 9:30am to 10:00am"). Named groups: h1, m1, h2, m2 and
	// optionally mer1, mer2 for AM/PM letters.
	RangeRe *regexp.Regexp

	// PlaceholderRe matches collapsed-counter text such as "3 events" or
	// "2 события", which looks like a label but never is a title.
	PlaceholderRe *regexp.Regexp

	Weekdays        []string
	TodayWords      []string
	MetadataMarkers []string
}

var registry []Locale

// Register appends a locale to the lookup order. The first registered locale
// is the primary one; extraction tries locales in registration order.
func Register(l Locale) {
	registry = append(registry, l)
}

func init() {
	Register(Russian())
	Register(English())
}

// All returns the registered locales in lookup order.
func All() []Locale {
	out := make([]Locale, len(registry))
	copy(out, registry)
	return out
}

// ByCode finds a registered locale by its code ("ru", "en").
func ByCode(code string) (Locale, bool) {
	for _, l := range registry {
		if l.Code == code {
			return l, true
		}
	}
	return Locale{}, false
}

// Ordered returns all locales with the given one moved to the front, so a
// deployment can prefer its calendar language without dropping the others.
func Ordered(primary string) []Locale {
	all := All()
	for i, l := range all {
		if l.Code == primary && i > 0 {
			reordered := make([]Locale, 0, len(all))
			reordered = append(reordered, l)
			reordered = append(reordered, all[:i]...)
			reordered = append(reordered, all[i+1:]...)
			return reordered
		}
	}
	return all
}

// MonthFromWord resolves a month word against every registered locale.
func MonthFromWord(word string) (time.Month, bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	for _, l := range registry {
		if m, ok := l.Months[w]; ok {
			return m, true
		}
	}
	return 0, false
}

// IsPlaceholder reports whether text is a collapsed-events counter in any
// registered locale.
func IsPlaceholder(text string) bool {
	for _, l := range registry {
		if l.PlaceholderRe.MatchString(text) {
			return true
		}
	}
	return false
}

// HasMetadataMarker reports whether text starts with a calendar-metadata
// marker ("Calendar:", "Место:") in any registered locale.
func HasMetadataMarker(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, l := range registry {
		for _, marker := range l.MetadataMarkers {
			if strings.HasPrefix(t, marker) {
				return true
			}
		}
	}
	return false
}

// IsDateWord reports whether the whole text is a standalone date word: a
// weekday name, a "today" word or a bare month name in any registered locale.
func IsDateWord(text string) bool {
	t := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(text), ",.")))
	if t == "" {
		return false
	}
	for _, l := range registry {
		for _, w := range l.Weekdays {
			if t == w {
				return true
			}
		}
		for _, w := range l.TodayWords {
			if t == w {
				return true
			}
		}
		if _, ok := l.Months[t]; ok {
			return true
		}
	}
	return false
}

func alternation(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	return strings.Join(quoted, "|")
}
