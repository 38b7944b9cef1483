package probe

import (
	"fmt"

	"github.com/scottcagno/hashtrace/pkg/hash"
)

/*
	Generate runs every key through a fixed size table that resolves
	collisions with linear probing, and records each instant as a Frame:
	-----------------------
	1) start:     hash(key) % size is computed, nothing is examined yet
	2) collision: the slot at the current index is occupied
	3) probe:     the index moved one slot to the right, wrapping around
	4) placed:    the key was written into the current (empty) slot
	Steps 2 and 3 repeat until an empty slot turns up. A step that finds
	every slot occupied fails the whole run with a *TableFullError.

	With a well distributed hash and load factor a before an insert the
	expected number of probes is about 1/(1-a), see ExpectedProbes.
*/

// Generate runs the insertion algorithm over keys and returns the full
// trace. The result depends only on keys, size and h.
func Generate[K any](keys []K, size int, h hash.Hasher[K]) (*Trace[K], error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: table size must be positive, got %d", ErrInvalidConfig, size)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: no hash function", ErrInvalidConfig)
	}
	tr := &Trace[K]{
		Size:        size,
		Steps:       len(keys),
		Frames:      make([]Frame[K], 0, 2*len(keys)),
		LoadFactors: make([]float64, 0, len(keys)),
	}
	tbl := newTable[K](size)
	for i, key := range keys {
		if err := insert(tr, tbl, i+1, key, h); err != nil {
			return nil, err
		}
		tr.LoadFactors = append(tr.LoadFactors, tbl.loadFactor())
	}
	return tr, nil
}

// insert places a single key into tbl, appending every frame of the step
func insert[K any](tr *Trace[K], tbl *table[K], step int, key K, h hash.Hasher[K]) error {
	start := int(h.Sum(key) % uint64(tbl.size()))
	idx, probes := start, 0
	emit := func(phase Phase) {
		tr.Frames = append(tr.Frames, Frame[K]{
			Step:         step,
			Key:          key,
			StartIndex:   start,
			CurrentIndex: idx,
			Probes:       probes,
			Table:        tbl.snapshot(),
			Phase:        phase,
			Placed:       phase == PhasePlaced,
		})
	}
	emit(PhaseStart)
	for tbl.occupied(idx) {
		emit(PhaseCollision)
		probes++
		if probes >= tbl.size() {
			return &TableFullError{
				Step: step,
				Key:  fmt.Sprint(key),
				Size: tbl.size(),
			}
		}
		idx = tbl.next(idx)
		emit(PhaseProbe)
	}
	tbl.put(idx, key)
	emit(PhasePlaced)
	return nil
}
