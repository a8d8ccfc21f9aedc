package locale

import (
	"regexp"
	"time"
)

// Month words as they appear in rendered calendar text: genitive forms from
// dates ("10 января"), nominative forms from headers, and abbreviations.
// Longer forms come first so they win over their own prefixes.
var russianMonthWords = []struct {
	word  string
	month time.Month
}{
	{"января", time.January}, {"февраля", time.February}, {"марта", time.March},
	{"апреля", time.April}, {"июня", time.June}, {"июля", time.July},
	{"августа", time.August}, {"сентября", time.September}, {"октября", time.October},
	{"ноября", time.November}, {"декабря", time.December},
	{"январь", time.January}, {"февраль", time.February}, {"март", time.March},
	{"апрель", time.April}, {"июнь", time.June}, {"июль", time.July},
	{"август", time.August}, {"сентябрь", time.September}, {"октябрь", time.October},
	{"ноябрь", time.November}, {"декабрь", time.December},
	{"сент", time.September}, {"нояб", time.November},
	{"мая", time.May}, {"май", time.May},
	{"янв", time.January}, {"фев", time.February}, {"мар", time.March},
	{"апр", time.April}, {"июн", time.June}, {"июл", time.July},
	{"авг", time.August}, {"сен", time.September}, {"окт", time.October},
	{"ноя", time.November}, {"дек", time.December},
}

// Russian builds the Russian locale, the primary dialect of the rendered
// calendars this engine was written for.
func Russian() Locale {
	months := make(map[string]time.Month, len(russianMonthWords))
	words := make([]string, 0, len(russianMonthWords))
	for _, mw := range russianMonthWords {
		months[mw.word] = mw.month
		words = append(words, mw.word)
	}
	alt := alternation(words)

	return Locale{
		Code:   "ru",
		Months: months,
		DayMonthRe: regexp.MustCompile(
			`(?i)(?:^|[^\p{L}\d])(?P<day>\d{1,2})\s+(?P<month>` + alt + `)\.?(?:,?\s+(?P<year>\d{4}))?(?:[^\p{L}\d]|$)`),
		MonthDayRe: nil,
		RangeRe: regexp.MustCompile(
			`(?i)(?:^|[^\p{L}])с\s+(?P<h1>\d{1,2}):(?P<m1>\d{2})\s+до\s+(?P<h2>\d{1,2}):(?P<m2>\d{2})`),
		PlaceholderRe: regexp.MustCompile(
			`(?i)^\s*(?:ещё\s+|еще\s+)?\d+\s+событ(?:ие|ия|ий)\s*$`),
		Weekdays: []string{
			"понедельник", "вторник", "среда", "четверг", "пятница", "суббота", "воскресенье",
			"пн", "вт", "ср", "чт", "пт", "сб", "вс",
		},
		TodayWords: []string{"сегодня", "завтра", "вчера"},
		MetadataMarkers: []string{
			"календарь:", "место:", "организатор:", "кем:", "цвет:",
		},
	}
}
