package probe

import (
	"encoding/json"
	"fmt"
)

// Phase names the kind of instant a Frame records
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseCollision
	PhaseProbe
	PhasePlaced
)

var phaseNames = [...]string{
	PhaseStart:     "start",
	PhaseCollision: "collision",
	PhaseProbe:     "probe",
	PhasePlaced:    "placed",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	if int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("probe: unknown phase %d", uint8(p))
	}
	return []byte(phaseNames[p]), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("probe: unknown phase %q", text)
}

// Slot is a single bucket of a table snapshot
type Slot[K any] struct {
	Key      K
	Occupied bool
}

// MarshalJSON writes empty slots as null
func (s Slot[K]) MarshalJSON() ([]byte, error) {
	if !s.Occupied {
		return []byte("null"), nil
	}
	return json.Marshal(s.Key)
}

func (s *Slot[K]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Slot[K]{}
		return nil
	}
	if err := json.Unmarshal(data, &s.Key); err != nil {
		return err
	}
	s.Occupied = true
	return nil
}

// Frame is one recorded instant of a single insertion. A Frame owns its
// Table; nothing else holds a reference to it.
type Frame[K any] struct {
	Step         int       `json:"step"`
	Key          K         `json:"key"`
	StartIndex   int       `json:"start_index"`
	CurrentIndex int       `json:"current_index"`
	Probes       int       `json:"probes"`
	Table        []Slot[K] `json:"table"`
	Phase        Phase     `json:"phase"`
	Placed       bool      `json:"placed"`
}

// Occupied returns the number of filled slots in the frame's snapshot
func (f *Frame[K]) Occupied() int {
	var n int
	for i := range f.Table {
		if f.Table[i].Occupied {
			n++
		}
	}
	return n
}

// LoadFactor returns the fill ratio of the frame's snapshot
func (f *Frame[K]) LoadFactor() float64 {
	if len(f.Table) == 0 {
		return 0
	}
	return float64(f.Occupied()) / float64(len(f.Table))
}
