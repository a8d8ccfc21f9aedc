package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdered(t *testing.T) {
	t.Run("should keep registration order for the default primary", func(t *testing.T) {
		locales := Ordered("ru")

		require.Len(t, locales, 2)
		assert.Equal(t, "ru", locales[0].Code)
		assert.Equal(t, "en", locales[1].Code)
	})

	t.Run("should move the requested locale to the front", func(t *testing.T) {
		locales := Ordered("en")

		require.Len(t, locales, 2)
		assert.Equal(t, "en", locales[0].Code)
		assert.Equal(t, "ru", locales[1].Code)
	})

	t.Run("should fall back to registration order for unknown code", func(t *testing.T) {
		locales := Ordered("de")

		require.Len(t, locales, 2)
		assert.Equal(t, "ru", locales[0].Code)
	})
}

func TestMonthFromWord(t *testing.T) {
	tests := []struct {
		word  string
		month time.Month
		found bool
	}{
		{"января", time.January, true},
		{"Января", time.January, true},
		{"декабря", time.December, true},
		{"май", time.May, true},
		{"сен", time.September, true},
		{"January", time.January, true},
		{"dec", time.December, true},
		{"Sept", time.September, true},
		{"notamonth", 0, false},
		{"январский", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			month, ok := MonthFromWord(tt.word)

			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.month, month)
			}
		})
	}
}

func TestRussianRangeRe(t *testing.T) {
	ru := Russian()

	t.Run("should capture both clock readings", func(t *testing.T) {
		m := ru.RangeRe.FindStringSubmatch("Занятие, с 13:00 до 13:30, зал 2")

		require.NotNil(t, m)
		assert.Equal(t, "13", m[ru.RangeRe.SubexpIndex("h1")])
		assert.Equal(t, "00", m[ru.RangeRe.SubexpIndex("m1")])
		assert.Equal(t, "13", m[ru.RangeRe.SubexpIndex("h2")])
		assert.Equal(t, "30", m[ru.RangeRe.SubexpIndex("m2")])
	})

	t.Run("should not match the preposition inside a word", func(t *testing.T) {
		assert.Nil(t, ru.RangeRe.FindStringSubmatch("вес 13:00 до 13:30"))
	})
}

func TestEnglishRangeRe(t *testing.T) {
	en := English()

	t.Run("should capture meridiem letters", func(t *testing.T) {
		m := en.RangeRe.FindStringSubmatch("Standup from 9:30am to 10:00am daily")

		require.NotNil(t, m)
		assert.Equal(t, "9", m[en.RangeRe.SubexpIndex("h1")])
		assert.Equal(t, "30", m[en.RangeRe.SubexpIndex("m1")])
		assert.Equal(t, "a", m[en.RangeRe.SubexpIndex("mer1")])
		assert.Equal(t, "10", m[en.RangeRe.SubexpIndex("h2")])
		assert.Equal(t, "a", m[en.RangeRe.SubexpIndex("mer2")])
	})

	t.Run("should allow hours without minutes", func(t *testing.T) {
		m := en.RangeRe.FindStringSubmatch("from 9 to 10 PM")

		require.NotNil(t, m)
		assert.Equal(t, "9", m[en.RangeRe.SubexpIndex("h1")])
		assert.Equal(t, "", m[en.RangeRe.SubexpIndex("m1")])
		assert.Equal(t, "P", m[en.RangeRe.SubexpIndex("mer2")])
	})
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"3 события", true},
		{"1 событие", true},
		{"12 событий", true},
		{"Ещё 2 события", true},
		{"2 events", true},
		{"1 event", true},
		{"+2 more", true},
		{"3 more events", true},
		{"3 событиях сегодня", false},
		{"Standup", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlaceholder(tt.text))
		})
	}
}

func TestIsDateWord(t *testing.T) {
	assert.True(t, IsDateWord("понедельник"))
	assert.True(t, IsDateWord("Сегодня"))
	assert.True(t, IsDateWord("январь"))
	assert.True(t, IsDateWord("Friday"))
	assert.True(t, IsDateWord("dec"))
	assert.False(t, IsDateWord("Тренировка"))
	assert.False(t, IsDateWord("Weekly sync"))
	assert.False(t, IsDateWord(""))
}

func TestHasMetadataMarker(t *testing.T) {
	assert.True(t, HasMetadataMarker("Календарь: Работа"))
	assert.True(t, HasMetadataMarker("Location: Room 4"))
	assert.False(t, HasMetadataMarker("Обед с командой"))
}

func TestDateRegexes(t *testing.T) {
	ru := Russian()
	en := English()

	t.Run("should capture russian day month year", func(t *testing.T) {
		m := ru.DayMonthRe.FindStringSubmatch("Тренировка, 10 января 2025")

		require.NotNil(t, m)
		assert.Equal(t, "10", m[ru.DayMonthRe.SubexpIndex("day")])
		assert.Equal(t, "января", m[ru.DayMonthRe.SubexpIndex("month")])
		assert.Equal(t, "2025", m[ru.DayMonthRe.SubexpIndex("year")])
	})

	t.Run("should capture russian day month without year", func(t *testing.T) {
		m := ru.DayMonthRe.FindStringSubmatch("пятница, 10 января, 9:30")

		require.NotNil(t, m)
		assert.Equal(t, "10", m[ru.DayMonthRe.SubexpIndex("day")])
		assert.Equal(t, "", m[ru.DayMonthRe.SubexpIndex("year")])
	})

	t.Run("should capture english month day year", func(t *testing.T) {
		m := en.MonthDayRe.FindStringSubmatch("Gym on January 10, 2025")

		require.NotNil(t, m)
		assert.Equal(t, "January", m[en.MonthDayRe.SubexpIndex("month")])
		assert.Equal(t, "10", m[en.MonthDayRe.SubexpIndex("day")])
		assert.Equal(t, "2025", m[en.MonthDayRe.SubexpIndex("year")])
	})

	t.Run("should not match a month inside another word", func(t *testing.T) {
		assert.Nil(t, ru.DayMonthRe.FindStringSubmatch("10 январский план"))
	})
}
