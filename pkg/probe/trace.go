package probe

import "math"

// Trace is the complete, read-only output of a Generate call
type Trace[K any] struct {
	Size        int        `json:"size"`
	Steps       int        `json:"steps"`
	Frames      []Frame[K] `json:"frames"`
	LoadFactors []float64  `json:"load_factors"`
}

// Len returns the number of frames in the trace
func (tr *Trace[K]) Len() int {
	return len(tr.Frames)
}

// Frame returns the frame at index i
func (tr *Trace[K]) Frame(i int) *Frame[K] {
	return &tr.Frames[i]
}

// CompletedSteps returns how many steps have been placed as of frame i.
// Collision and probe frames do not count their own step as completed.
func (tr *Trace[K]) CompletedSteps(i int) int {
	f := &tr.Frames[i]
	if f.Placed {
		return f.Step
	}
	return f.Step - 1
}

// LoadFactorPrefix returns a copy of the load factors of every step
// completed as of frame i
func (tr *Trace[K]) LoadFactorPrefix(i int) []float64 {
	n := tr.CompletedSteps(i)
	prefix := make([]float64, n)
	copy(prefix, tr.LoadFactors[:n])
	return prefix
}

// StepProbes returns the number of collisions each step passed before
// its key was placed
func (tr *Trace[K]) StepProbes() []int {
	probes := make([]int, 0, tr.Steps)
	for i := range tr.Frames {
		if tr.Frames[i].Placed {
			probes = append(probes, tr.Frames[i].Probes)
		}
	}
	return probes
}

// StepStart returns the index of the first frame of step (1-based), or
// -1 if the trace has no such step
func (tr *Trace[K]) StepStart(step int) int {
	for i := range tr.Frames {
		if tr.Frames[i].Step == step {
			return i
		}
	}
	return -1
}

// ExpectedProbes returns the approximate number of probes an insert
// costs at load factor alpha, 1/(1-alpha). It returns +Inf once the
// table is full.
func ExpectedProbes(alpha float64) float64 {
	if alpha >= 1 {
		return math.Inf(1)
	}
	return 1 / (1 - alpha)
}
