package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("should parse markup and page URL", func(t *testing.T) {
		html := `<div data-eventid="abc">Gym</div>`

		snap, err := Parse(strings.NewReader(html), "https://calendar.example.com/r/week?date=2025-01-10")

		require.NoError(t, err)
		assert.Equal(t, 1, snap.Doc.Find("[data-eventid]").Length())
		assert.Equal(t, "2025-01-10", snap.DateParam())
	})

	t.Run("should accept markup without a URL", func(t *testing.T) {
		snap, err := Parse(strings.NewReader("<div>x</div>"), "")

		require.NoError(t, err)
		assert.Nil(t, snap.PageURL)
		assert.Equal(t, "", snap.DateParam())
	})

	t.Run("should reject an unparsable URL", func(t *testing.T) {
		_, err := Parse(strings.NewReader("<div>x</div>"), "http://bad url^")

		assert.Error(t, err)
	})
}

func TestNodeRect(t *testing.T) {
	snap, err := Parse(strings.NewReader(
		`<div id="a" data-snap-left="100.5" data-snap-right="220"></div>
		 <div id="b" data-snap-left="50"></div>
		 <div id="c" data-snap-left="80" data-snap-right="20"></div>`), "")
	require.NoError(t, err)

	t.Run("should read both bounds", func(t *testing.T) {
		rect, ok := NodeRect(snap.Doc.Find("#a"))

		require.True(t, ok)
		assert.Equal(t, 100.5, rect.Left)
		assert.Equal(t, 220.0, rect.Right)
		assert.True(t, rect.Contains(160))
		assert.False(t, rect.Contains(20))
	})

	t.Run("should fail when a bound is missing", func(t *testing.T) {
		_, ok := NodeRect(snap.Doc.Find("#b"))
		assert.False(t, ok)
	})

	t.Run("should fail on inverted bounds", func(t *testing.T) {
		_, ok := NodeRect(snap.Doc.Find("#c"))
		assert.False(t, ok)
	})
}

func TestInlineStyle(t *testing.T) {
	snap, err := Parse(strings.NewReader(
		`<div id="s" style="background-color: rgb(3, 155, 229); BORDER: 1px solid #fff; background-image: url(data:image/png;base64,xyz)"></div>`), "")
	require.NoError(t, err)

	props := InlineStyle(snap.Doc.Find("#s"))

	assert.Equal(t, "rgb(3, 155, 229)", props["background-color"])
	assert.Equal(t, "1px solid #fff", props["border"])
	assert.Contains(t, props["background-image"], "url(data:image/png")
}

func TestOwnText(t *testing.T) {
	snap, err := Parse(strings.NewReader(
		`<div id="outer">  Standup
			<span>9:30 AM</span> daily </div>`), "")
	require.NoError(t, err)

	assert.Equal(t, "Standup daily", OwnText(snap.Doc.Find("#outer")))
	assert.Equal(t, "9:30 AM", OwnText(snap.Doc.Find("#outer span")))
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpace("  a\n\tb   c "))
	assert.Equal(t, "", CollapseSpace("   "))
}
