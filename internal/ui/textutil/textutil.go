// Package textutil provides unicode-aware text helpers for widget rendering.
package textutil

import "github.com/mattn/go-runewidth"

// Ellipsis is appended when a string is truncated.
const Ellipsis = "…"

// Width returns the number of terminal columns a string occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate clips s to at most maxWidth visual columns, appending an ellipsis
// when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}
	avail := maxWidth - Width(Ellipsis)
	if avail < 0 {
		return Ellipsis
	}
	var out []rune
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if used+w > avail {
			break
		}
		out = append(out, r)
		used += w
	}
	return string(out) + Ellipsis
}

// PadRight pads s with spaces to targetWidth columns, truncating when it is
// already wider. Widget cells rely on this to keep grid rows aligned.
func PadRight(s string, targetWidth int) string {
	w := Width(s)
	if w >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return s + runewidth.FillRight("", targetWidth-w)
}
