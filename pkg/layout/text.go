package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// MeasureText returns the natural cell width/height of content: the display
// width of its widest line (accounting for double-width glyphs via
// go-runewidth) and its line count, when wrap is false. When wrap is true and
// maxWidth > 0, lines are greedily wrapped at grapheme-cluster boundaries
// (via rivo/uniseg, so combining marks are never split) so a command stream
// built from the result never has to split a cluster across two DRAW_TEXT_RUN
// commands.
func MeasureText(content string, wrap bool, maxWidth int) (width, height int) {
	lines := strings.Split(content, "\n")
	if !wrap || maxWidth <= 0 {
		maxLineW := 0
		for _, line := range lines {
			if w := runewidth.StringWidth(line); w > maxLineW {
				maxLineW = w
			}
		}
		return maxLineW, len(lines)
	}

	totalLines := 0
	maxLineW := 0
	for _, line := range lines {
		wrapped := WrapLine(line, maxWidth)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		totalLines += len(wrapped)
		for _, w := range wrapped {
			if width := runewidth.StringWidth(w); width > maxLineW {
				maxLineW = width
			}
		}
	}
	return maxLineW, totalLines
}

// WrapLine greedily packs grapheme clusters of line into rows no wider than
// maxWidth cells, breaking at the last preceding cluster boundary.
func WrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}
	var rows []string
	var current strings.Builder
	currentWidth := 0

	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if currentWidth > 0 && currentWidth+w > maxWidth {
			rows = append(rows, current.String())
			current.Reset()
			currentWidth = 0
		}
		current.WriteString(cluster)
		currentWidth += w
	}
	if current.Len() > 0 || len(rows) == 0 {
		rows = append(rows, current.String())
	}
	return rows
}
