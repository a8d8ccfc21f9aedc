package palette

import (
	"strconv"
	"strings"
)

// Default is the color assumed when a rendered event exposes no usable color
// signal at all, and the substitute for unknown palette identifiers.
const Default = "#039be5"

// Rendered calendars tag events with small integer color identifiers instead
// of real colors. This table maps them to the hex values the UI paints with.
var colorsByID = map[int]string{
	1:  "#7986cb",
	2:  "#33b679",
	3:  "#8e24aa",
	4:  "#e67c73",
	5:  "#f6bf26",
	6:  "#f4511e",
	7:  "#039be5",
	8:  "#616161",
	9:  "#3f51b5",
	10: "#0b8043",
	11: "#d50000",
}

var displayNames = map[string]string{
	"#7986cb": "Lavender",
	"#33b679": "Sage",
	"#8e24aa": "Grape",
	"#e67c73": "Flamingo",
	"#f6bf26": "Banana",
	"#f4511e": "Tangerine",
	"#039be5": "Peacock",
	"#616161": "Graphite",
	"#3f51b5": "Blueberry",
	"#0b8043": "Basil",
	"#d50000": "Tomato",
}

// ByID returns the palette color for an identifier, or false when the
// identifier is not part of the palette.
func ByID(id int) (string, bool) {
	hex, ok := colorsByID[id]
	return hex, ok
}

// FromIDText resolves a raw identifier attribute value. Unknown and malformed
// identifiers resolve to the default color rather than failing, so an event
// that clearly carries a color marker never loses it to a palette mismatch.
func FromIDText(raw string) string {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Default
	}
	hex, ok := ByID(id)
	if !ok {
		return Default
	}
	return hex
}

// DisplayName returns the human name of a palette color. Colors outside the
// palette get a generic label carrying the raw value.
func DisplayName(hex string) string {
	if name, ok := displayNames[strings.ToLower(hex)]; ok {
		return name
	}
	return "Color " + hex
}
