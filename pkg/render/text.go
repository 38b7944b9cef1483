package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const defaultChartHeight = 5

// Text draws a View as plain text: a row of buckets, a marker row with
// ^ under the origin slot and * under the active slot, an info line and
// a bar chart of the load factor history.
type Text struct {
	CellWidth   int // characters per bucket, defaults to the widest label
	ChartHeight int // rows in the load factor chart, defaults to 5
}

func (t Text) cellWidth(v View) int {
	if t.CellWidth > 0 {
		return t.CellWidth
	}
	width := len(fmt.Sprint(len(v.Buckets) - 1))
	for _, b := range v.Buckets {
		if n := utf8.RuneCountInString(b.Label); n > width {
			width = n
		}
	}
	return width
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func (t Text) Render(w io.Writer, v View) error {
	bw := bufio.NewWriter(w)
	width := t.cellWidth(v)

	// index row, bucket row and marker row
	var idx, row, mark strings.Builder
	for _, b := range v.Buckets {
		idx.WriteString(" " + center(fmt.Sprint(b.Index), width))
		label := "."
		if b.Occupied {
			label = b.Label
		}
		row.WriteString("|" + center(label, width))
		m := ""
		switch {
		case b.Active && b.Origin:
			m = "^*"
		case b.Active:
			m = "*"
		case b.Origin:
			m = "^"
		}
		mark.WriteString(" " + center(m, width))
	}
	row.WriteString("|")
	fmt.Fprintf(bw, "frame %d/%d", v.Frame+1, v.Frames)
	if v.Paused {
		bw.WriteString(" [paused]")
	}
	bw.WriteString("\n")
	fmt.Fprintln(bw, strings.TrimRight(idx.String(), " "))
	fmt.Fprintln(bw, row.String())
	fmt.Fprintln(bw, strings.TrimRight(mark.String(), " "))
	fmt.Fprintln(bw, v.Info())

	t.renderChart(bw, v)
	return bw.Flush()
}

// renderChart draws one column per step; a column is filled up to its
// load factor rounded to the chart's resolution
func (t Text) renderChart(w *bufio.Writer, v View) {
	height := t.ChartHeight
	if height < 1 {
		height = defaultChartHeight
	}
	steps := v.Steps
	if steps < len(v.Chart) {
		steps = len(v.Chart)
	}
	for row := height; row > 0; row-- {
		threshold := float64(row) / float64(height)
		var line strings.Builder
		fmt.Fprintf(&line, "%4.2f |", threshold)
		for s := 0; s < steps; s++ {
			c := byte(' ')
			if s < len(v.Chart) && v.Chart[s].LoadFactor+1e-9 >= threshold-1/(2*float64(height)) {
				c = '#'
			}
			line.WriteByte(c)
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
	fmt.Fprintf(w, "     +%s\n", strings.Repeat("-", steps))
}
