package dom

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Attributes the extraction heuristics read from rendered calendar markup.
// Rendered trees are attribute-sparse, so everything here is optional; the
// heuristics treat each attribute as one more signal, never a requirement.
const (
	AttrEventID   = "data-eventid"
	AttrAriaLabel = "aria-label"
	AttrTitle     = "title"
	AttrStartTime = "data-start-time"
	AttrEndTime   = "data-end-time"
	AttrColorID   = "data-color-id"
	AttrColor     = "data-color"
	AttrDate      = "data-date"
	AttrDay       = "data-day"
	AttrHour      = "data-hour"
)

// Annotations the capture layer bakes into its serialized clone of the page.
// Static markup has no computed styles or layout geometry, so the capture
// script records them as plain attributes before serializing.
const (
	AttrSnapBackground = "data-snap-bg"
	AttrSnapBorder     = "data-snap-border"
	AttrSnapLeft       = "data-snap-left"
	AttrSnapRight      = "data-snap-right"
)

// Snapshot is one parsed rendered page: the document tree plus the page URL
// it was captured from, which itself can carry a date hint.
type Snapshot struct {
	Doc        *goquery.Document
	PageURL    *url.URL
	CapturedAt time.Time
}

// Parse builds a snapshot from serialized markup. pageURL may be empty when
// the caller received bare markup with no browsing context.
func Parse(r io.Reader, pageURL string) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	snap := &Snapshot{Doc: doc}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, fmt.Errorf("parsing page URL %q: %w", pageURL, err)
		}
		snap.PageURL = u
	}
	return snap, nil
}

// DateParam returns the "date" query parameter of the page URL, or "" when
// there is no URL or no such parameter.
func (s *Snapshot) DateParam() string {
	if s.PageURL == nil {
		return ""
	}
	return s.PageURL.Query().Get("date")
}

// Rect is the horizontal extent of a node as recorded by the capture layer.
type Rect struct {
	Left  float64
	Right float64
}

func (r Rect) Center() float64 {
	return (r.Left + r.Right) / 2
}

// Contains reports whether x falls inside the horizontal extent.
func (r Rect) Contains(x float64) bool {
	return x >= r.Left && x <= r.Right
}

// NodeRect reads the capture-layer geometry annotations off a node. It
// returns false when the node carries no usable geometry.
func NodeRect(sel *goquery.Selection) (Rect, bool) {
	left, okL := attrFloat(sel, AttrSnapLeft)
	right, okR := attrFloat(sel, AttrSnapRight)
	if !okL || !okR || right <= left {
		return Rect{}, false
	}
	return Rect{Left: left, Right: right}, true
}

func attrFloat(sel *goquery.Selection, name string) (float64, bool) {
	raw, ok := sel.Attr(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// InlineStyle parses the style attribute into a property map with lowercase
// keys. Values keep their case; only the first colon of a declaration splits
// name from value.
func InlineStyle(sel *goquery.Selection) map[string]string {
	raw, ok := sel.Attr("style")
	if !ok || raw == "" {
		return nil
	}
	props := make(map[string]string)
	for _, decl := range strings.Split(raw, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name != "" && value != "" {
			props[name] = value
		}
	}
	return props
}

// OwnText returns the text placed directly inside a node, excluding
// descendant elements, with whitespace collapsed.
func OwnText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
				b.WriteString(" ")
			}
		}
	}
	return CollapseSpace(b.String())
}

// CollapseSpace squeezes all runs of whitespace into single spaces and trims
// the ends. Rendered markup is full of layout whitespace that would otherwise
// leak into titles.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
