package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

const (
	opacityBase   = 0.25
	opacityOrigin = 0.55
	opacityActive = 0.75
)

var svgTemplate = template.Must(template.New("view.svg").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" font-family="monospace">
<text x="{{.Pad}}" y="18" font-size="12">{{.Info}}</text>
{{- range .Cells}}
<rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" fill="steelblue" fill-opacity="{{.Opacity}}" stroke="black" stroke-width="0.5"/>
<text x="{{.CX}}" y="{{.CY}}" font-size="10" text-anchor="middle">{{.Label}}</text>
<text x="{{.CX}}" y="{{.IY}}" font-size="9" text-anchor="middle" fill="gray">{{.Index}}</text>
{{- end}}
<rect x="{{.Chart.X}}" y="{{.Chart.Y}}" width="{{.Chart.W}}" height="{{.Chart.H}}" fill="none" stroke="lightgray"/>
<text x="{{.Pad}}" y="{{.Chart.LabelY}}" font-size="10">load factor</text>
{{- if .Chart.Points}}
<polyline points="{{.Chart.Points}}" fill="none" stroke="darkorange" stroke-width="1.5"/>
<circle cx="{{.Chart.DotX}}" cy="{{.Chart.DotY}}" r="3" fill="darkorange"/>
{{- end}}
</svg>
`))

type svgCell struct {
	X, Y, W, H int
	CX, CY, IY int
	Opacity    float64
	Label      string
	Index      int
}

type svgChart struct {
	X, Y, W, H int
	LabelY     int
	Points     string
	DotX, DotY float64
}

type svgData struct {
	Width, Height int
	Pad           int
	Info          string
	Cells         []svgCell
	Chart         svgChart
}

// SVG draws a View as a standalone SVG document: the table as a row of
// shaded cells and the load factor history as a polyline below it.
type SVG struct {
	CellSize    int // pixel width of a bucket, defaults to 40
	ChartHeight int // pixel height of the chart, defaults to 120
}

func (s SVG) layout(v View) svgData {
	cell := s.CellSize
	if cell <= 0 {
		cell = 40
	}
	chartH := s.ChartHeight
	if chartH <= 0 {
		chartH = 120
	}
	const pad, top = 10, 30
	width := 2*pad + cell*len(v.Buckets)
	if width < 480 {
		width = 480
	}
	d := svgData{
		Width:  width,
		Height: top + cell + 30 + chartH + 20,
		Pad:    pad,
		Info:   v.Info(),
		Cells:  make([]svgCell, len(v.Buckets)),
	}
	for i, b := range v.Buckets {
		c := svgCell{
			X: pad + i*cell, Y: top, W: cell, H: cell,
			Opacity: opacityBase,
			Label:   b.Label,
			Index:   b.Index,
		}
		// the active highlight wins when both land on the same slot
		if b.Origin {
			c.Opacity = opacityOrigin
		}
		if b.Active {
			c.Opacity = opacityActive
		}
		c.CX = c.X + cell/2
		c.CY = top + cell/2 + 4
		c.IY = top + cell + 12
		d.Cells[i] = c
	}
	ch := svgChart{
		X: pad, Y: top + cell + 30, W: width - 2*pad, H: chartH,
	}
	ch.LabelY = ch.Y - 4
	steps := v.Steps
	if steps < 2 {
		steps = 2
	}
	var pts []string
	for _, p := range v.Chart {
		// step 1 sits on the left edge, the last step on the right edge
		x := float64(ch.X) + float64(p.Step-1)*float64(ch.W)/float64(steps-1)
		y := float64(ch.Y+ch.H) - p.LoadFactor*float64(ch.H)
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
		ch.DotX, ch.DotY = x, y
	}
	ch.Points = strings.Join(pts, " ")
	d.Chart = ch
	return d
}

func (s SVG) Render(w io.Writer, v View) error {
	return svgTemplate.Execute(w, s.layout(v))
}
