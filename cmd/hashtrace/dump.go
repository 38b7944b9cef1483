package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/scottcagno/hashtrace/pkg/render"
	"github.com/scottcagno/hashtrace/pkg/sim"
)

// dump writes every frame of the trace followed by a per step summary,
// or the whole trace as JSON
func dump(s *sim.Session, w io.Writer, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(s.Trace())
	}
	tr := s.Trace()
	r := render.Text{}
	for i := 0; i < tr.Len(); i++ {
		if err := r.Render(w, render.NewView(tr, i)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return s.Summary(w)
}
