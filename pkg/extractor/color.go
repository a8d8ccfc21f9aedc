package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/OneZee23/calendar-summary/pkg/dom"
	"github.com/OneZee23/calendar-summary/pkg/palette"
	"github.com/PuerkitoBio/goquery"
)

// Ancestor walk bound for identifier-only color recovery. Styling beyond the
// immediate chip belongs to the page, not the event.
const maxColorClimb = 4

var (
	colorClassRe = regexp.MustCompile(`(?i)(?:^|\s)color-(\d{1,2})(?:\s|$)`)
	hexColorRe   = regexp.MustCompile(`(?i)#(?:[0-9a-f]{6}|[0-9a-f]{3})\b`)
	rgbColorRe   = regexp.MustCompile(`(?i)rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([0-9.]+)\s*)?\)`)
)

// Inline style properties that can carry the event color, strongest first.
// Border colors beat backgrounds: rendered chips often keep a white body and
// show their calendar color only on the frame.
var styleColorProps = []string{
	"border-color",
	"border-left-color",
	"border",
	"border-left",
	"background-color",
	"background",
}

// resolveColor recovers the paint color of a candidate. Each signal class is
// scanned across the node and all its descendants before falling to the next
// one, so an explicit identifier anywhere beats styling everywhere. Nodes
// without any signal end up with no color; the summary layer substitutes the
// default.
func (x *Extractor) resolveColor(sel *goquery.Selection) string {
	nodes := sel.AddSelection(sel.Find("*"))
	steps := []func(*goquery.Selection) string{
		colorFromIDAttr,
		colorFromColorAttr,
		colorFromClass,
		colorFromSnapshot,
		colorFromInlineStyle,
	}
	for _, step := range steps {
		var found string
		nodes.EachWithBreak(func(_ int, n *goquery.Selection) bool {
			if c := step(n); c != "" {
				found = c
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	// identifiers sometimes sit on a wrapping group element
	cur := sel.Parent()
	for depth := 0; depth < maxColorClimb && cur.Length() > 0; depth++ {
		if c := colorFromIDAttr(cur); c != "" {
			return c
		}
		if c := colorFromClass(cur); c != "" {
			return c
		}
		cur = cur.Parent()
	}
	return ""
}

func colorFromIDAttr(sel *goquery.Selection) string {
	raw, ok := sel.Attr(dom.AttrColorID)
	if !ok || strings.TrimSpace(raw) == "" {
		return ""
	}
	// unknown identifiers resolve to the default on purpose: the node
	// clearly declared a color, the palette just does not know it
	return palette.FromIDText(raw)
}

func colorFromColorAttr(sel *goquery.Selection) string {
	raw, ok := sel.Attr(dom.AttrColor)
	if !ok {
		return ""
	}
	return NormalizeColor(raw)
}

func colorFromClass(sel *goquery.Selection) string {
	m := colorClassRe.FindStringSubmatch(sel.AttrOr("class", ""))
	if m == nil {
		return ""
	}
	return palette.FromIDText(m[1])
}

// colorFromSnapshot reads the computed colors recorded by the capture layer.
// Neutral frame colors carry no event identity and are skipped.
func colorFromSnapshot(sel *goquery.Selection) string {
	if c := usableColor(sel.AttrOr(dom.AttrSnapBorder, "")); c != "" {
		return c
	}
	return usableColor(sel.AttrOr(dom.AttrSnapBackground, ""))
}

func colorFromInlineStyle(sel *goquery.Selection) string {
	props := dom.InlineStyle(sel)
	if props == nil {
		return ""
	}
	for _, prop := range styleColorProps {
		if c := usableColor(props[prop]); c != "" {
			return c
		}
	}
	return ""
}

func usableColor(raw string) string {
	c := NormalizeColor(raw)
	if c == "" || isNeutral(c) {
		return ""
	}
	return c
}

func isNeutral(hex string) bool {
	return hex == "#ffffff" || hex == "#000000"
}

// NormalizeColor canonicalizes any CSS color literal to lowercase #rrggbb.
// Transparent, out-of-range and unparsable values normalize to "".
func NormalizeColor(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "transparent") {
		return ""
	}
	if m := rgbColorRe.FindStringSubmatch(raw); m != nil {
		if m[4] != "" {
			if alpha, err := strconv.ParseFloat(m[4], 64); err == nil && alpha == 0 {
				return ""
			}
		}
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return ""
		}
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	if m := hexColorRe.FindString(raw); m != "" {
		hex := strings.ToLower(m)
		if len(hex) == 4 {
			hex = fmt.Sprintf("#%c%c%c%c%c%c", hex[1], hex[1], hex[2], hex[2], hex[3], hex[3])
		}
		return hex
	}
	return ""
}
