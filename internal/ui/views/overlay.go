package views

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay draws box over base with its top-left corner at (x, y). Cells of
// base outside the box keep their styling.
func Overlay(base, box string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")
	x = max(x, 0)
	y = max(y, 0)

	for i, boxLine := range boxLines {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		line := baseLines[row]
		w := ansi.StringWidth(boxLine)

		left := ansi.Truncate(line, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(line, x+w, "")

		baseLines[row] = left + ansi.ResetStyle + boxLine + ansi.ResetStyle + right
	}
	return strings.Join(baseLines, "\n")
}

// Hyperlink wraps label in an OSC 8 hyperlink to url.
func Hyperlink(label, url string) string {
	if url == "" {
		return label
	}
	return ansi.SetHyperlink(url) + label + ansi.ResetHyperlink()
}
