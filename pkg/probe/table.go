package probe

// table is the live slot array mutated while a trace is generated. It
// never grows, shrinks or deletes; a filled slot stays filled.
type table[K any] struct {
	slots []Slot[K]
	used  int
}

func newTable[K any](size int) *table[K] {
	return &table[K]{
		slots: make([]Slot[K], size),
	}
}

func (t *table[K]) size() int {
	return len(t.slots)
}

func (t *table[K]) occupied(i int) bool {
	return t.slots[i].Occupied
}

func (t *table[K]) put(i int, key K) {
	t.slots[i] = Slot[K]{Key: key, Occupied: true}
	t.used++
}

// next returns the slot after i, wrapping around
func (t *table[K]) next(i int) int {
	return (i + 1) % len(t.slots)
}

func (t *table[K]) loadFactor() float64 {
	return float64(t.used) / float64(len(t.slots))
}

// snapshot returns an independent copy of the slot array
func (t *table[K]) snapshot() []Slot[K] {
	snap := make([]Slot[K], len(t.slots))
	copy(snap, t.slots)
	return snap
}
