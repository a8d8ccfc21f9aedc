package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFrom(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"time first comma layout", "с 13:00 до 13:30, Standup, J. Doe", "Standup"},
		{"title first comma layout", "Standup, с 13:00 до 13:30", "Standup"},
		{"english label", "9:30 AM - 10:00 AM, Gym session", "Gym session"},
		{"title with trailing range", "Gym session, January 10, 2025", "Gym session"},
		{"plain title", "Тренировка", "Тренировка"},
		{"title around a stripped time", "Плавание 14:00 - 15:30", "Плавание"},
		{"colon title survives", "1:1 с Антоном", "1:1 с Антоном"},
		{"time only", "9:30 AM - 10:00 AM", ""},
		{"placeholder only", "3 события", ""},
		{"english placeholder", "+2 more", ""},
		{"date metadata", "пятница, 10 января", ""},
		{"weekday only", "понедельник", ""},
		{"location marker", "Location: Room 4", ""},
		{"calendar marker", "Календарь: Работа", ""},
		{"single character", "X", ""},
		{"bare day number", "10", ""},
		{"empty", "", ""},
		{"whitespace", "   \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titleFrom(tt.text))
		})
	}
}

func TestIsValidTitle(t *testing.T) {
	assert.True(t, isValidTitle("Gym"))
	assert.True(t, isValidTitle("Йога"))
	assert.True(t, isValidTitle("Apt 5"))
	assert.False(t, isValidTitle("9:30"))
	assert.False(t, isValidTitle("12 событий"))
	assert.False(t, isValidTitle("январь"))
	assert.False(t, isValidTitle("2025"))
	assert.False(t, isValidTitle("я"))
}

func TestStripTimes(t *testing.T) {
	t.Run("should remove worded ranges", func(t *testing.T) {
		got := stripTimes("Standup с 13:00 до 13:30 daily")

		assert.NotContains(t, got, "13:00")
		assert.Contains(t, got, "Standup")
	})

	t.Run("should remove textual dates", func(t *testing.T) {
		got := stripTimes("Gym 10 января 2025")

		assert.NotContains(t, got, "января")
		assert.Contains(t, got, "Gym")
	})

	t.Run("should leave plain titles alone", func(t *testing.T) {
		assert.Equal(t, "Просто встреча", stripTimes("Просто встреча"))
	})
}

func TestResolveTitle_DeepSearch(t *testing.T) {
	t.Run("should recover the title behind a placeholder from descendant labels", func(t *testing.T) {
		x := newTestExtractor(t, `
			<div id="cell" aria-label="3 события">
				<span aria-label="Йога"></span>
				3 события
			</div>`, "")

		title := x.resolveTitle(x.snap.Doc.Find("#cell"), "3 события", "", "", "3 события")

		assert.Equal(t, "Йога", title)
	})

	t.Run("should recover the title from an ancestor label", func(t *testing.T) {
		x := newTestExtractor(t, `
			<div aria-label="Планёрка">
				<div><div id="chip" aria-label="2 события">2 события</div></div>
			</div>`, "")

		title := x.resolveTitle(x.snap.Doc.Find("#chip"), "2 события", "", "", "2 события")

		assert.Equal(t, "Планёрка", title)
	})

	t.Run("should not deep search without a placeholder", func(t *testing.T) {
		x := newTestExtractor(t, `
			<div id="cell">
				<span aria-label="Йога"></span>
			</div>`, "")

		title := x.resolveTitle(x.snap.Doc.Find("#cell"), "", "", "", "")

		assert.Equal(t, "", title)
	})
}
