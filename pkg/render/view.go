// Package render turns a single trace frame into something a person can
// look at. NewView flattens a frame and the load factor history up to
// it into a View; a Renderer draws a View. Neither keeps any state
// between calls, so drawing the same View twice gives the same output.
package render

import (
	"fmt"
	"io"

	"github.com/scottcagno/hashtrace/pkg/probe"
)

// Renderer draws a View
type Renderer interface {
	Render(w io.Writer, v View) error
}

// Bucket is one table slot as it should be drawn
type Bucket struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Occupied bool   `json:"occupied"`
	Origin   bool   `json:"origin"` // hash(key) % size of the current step
	Active   bool   `json:"active"` // slot currently examined
}

// Point is a single load factor sample on the chart
type Point struct {
	Step       int     `json:"step"`
	LoadFactor float64 `json:"load_factor"`
}

// View is everything needed to draw one frame
type View struct {
	Frame        int      `json:"frame"`
	Frames       int      `json:"frames"`
	Step         int      `json:"step"`
	Steps        int      `json:"steps"`
	Key          string   `json:"key"`
	Phase        string   `json:"phase"`
	StartIndex   int      `json:"start_index"`
	CurrentIndex int      `json:"current_index"`
	Probes       int      `json:"probes"`
	Placed       bool     `json:"placed"`
	LoadFactor   float64  `json:"load_factor"`
	Paused       bool     `json:"paused"`
	Buckets      []Bucket `json:"buckets"`
	Chart        []Point  `json:"chart"`
}

// NewView builds the View of frame i of tr. The index is clamped to the
// trace; an empty trace gives the zero View.
func NewView[K any](tr *probe.Trace[K], i int) View {
	if tr == nil || tr.Len() == 0 {
		return View{}
	}
	if i < 0 {
		i = 0
	}
	if i >= tr.Len() {
		i = tr.Len() - 1
	}
	f := tr.Frame(i)
	v := View{
		Frame:        i,
		Frames:       tr.Len(),
		Step:         f.Step,
		Steps:        tr.Steps,
		Key:          fmt.Sprint(f.Key),
		Phase:        f.Phase.String(),
		StartIndex:   f.StartIndex,
		CurrentIndex: f.CurrentIndex,
		Probes:       f.Probes,
		Placed:       f.Placed,
		LoadFactor:   f.LoadFactor(),
		Buckets:      make([]Bucket, len(f.Table)),
	}
	for j, s := range f.Table {
		b := Bucket{
			Index:    j,
			Occupied: s.Occupied,
			Origin:   j == f.StartIndex,
			Active:   j == f.CurrentIndex,
		}
		if s.Occupied {
			b.Label = fmt.Sprint(s.Key)
		}
		v.Buckets[j] = b
	}
	for n, lf := range tr.LoadFactorPrefix(i) {
		v.Chart = append(v.Chart, Point{Step: n + 1, LoadFactor: lf})
	}
	return v
}

// Info returns the one line status summary of the view
func (v View) Info() string {
	return fmt.Sprintf("Step %d | key='%s' | hash%%size=%d | idx=%d | probes=%d | load_factor=%.2f | phase=%s",
		v.Step, v.Key, v.StartIndex, v.CurrentIndex, v.Probes, v.LoadFactor, v.Phase)
}
