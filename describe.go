package xlgrid

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const describeMaxWidth = 12

// Describe returns a plain-text rendering of the grid: a header with the
// dimensions and selection, a row of column labels, then one line per row
// with selected cells marked by a trailing '*'.
// Useful for debugging and for the replay command.
func (s State) Describe() string {
	values := s.Values()
	sel := s.Selection()
	labels, err := ColumnLabels(s.Cols())
	if err != nil {
		// every grid column is below the label limit; keep the output usable anyway
		labels = make([]string, s.Cols())
		for i := range labels {
			labels[i] = fmt.Sprintf("#%d", i)
		}
	}

	widths := make([]int, s.Cols())
	for c := range widths {
		widths[c] = max(runewidth.StringWidth(labels[c]), 1)
		for r := range values {
			widths[c] = max(widths[c], runewidth.StringWidth(values[r][c]))
		}
		widths[c] = min(widths[c], describeMaxWidth)
	}
	rowLabelWidth := len(fmt.Sprintf("%d", s.Rows()))

	var b strings.Builder
	fmt.Fprintf(&b, "Grid %dx%d", s.Rows(), s.Cols())
	if !sel.IsEmpty() {
		fmt.Fprintf(&b, " selection %s", sel)
		if sel.Dragging() {
			b.WriteString(" (dragging)")
		}
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "%*s", rowLabelWidth, "")
	for c, l := range labels {
		fmt.Fprintf(&b, " %s ", runewidth.FillRight(l, widths[c]))
	}
	b.WriteByte('\n')

	for r, row := range values {
		var line strings.Builder
		fmt.Fprintf(&line, "%*d", rowLabelWidth, r+1)
		for c, v := range row {
			mark := " "
			if sel.Contains(Position{Row: r, Col: c}) {
				mark = "*"
			}
			fmt.Fprintf(&line, " %s%s", runewidth.FillRight(truncate(v, widths[c]), widths[c]), mark)
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// truncate cuts s to at most w display columns on a rune boundary, marking
// the cut with a trailing '.'.
func truncate(s string, w int) string {
	return runewidth.Truncate(s, w, ".")
}
