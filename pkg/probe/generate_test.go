package probe

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scottcagno/hashtrace/pkg/hash"
	"github.com/stretchr/testify/require"
)

// charMod5 hashes a key to its first character code, which is what the
// hand worked scenarios below are built around
var charMod5 = hash.FirstChar

func phases[K any](frames []Frame[K]) []Phase {
	var ps []Phase
	for _, f := range frames {
		ps = append(ps, f.Phase)
	}
	return ps
}

func framesOfStep[K any](tr *Trace[K], step int) []Frame[K] {
	var fs []Frame[K]
	for _, f := range tr.Frames {
		if f.Step == step {
			fs = append(fs, f)
		}
	}
	return fs
}

func randomKeys(r *rand.Rand, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", r.Intn(1000))
	}
	return keys
}

func TestGenerateNoCollisions(t *testing.T) {
	tr, err := Generate([]string{"A", "B", "C"}, 5, charMod5)
	require.NoError(t, err)

	require.Equal(t, 6, tr.Len())
	require.Equal(t, []Phase{
		PhaseStart, PhasePlaced,
		PhaseStart, PhasePlaced,
		PhaseStart, PhasePlaced,
	}, phases(tr.Frames))
	require.Equal(t, []float64{0.2, 0.4, 0.6}, tr.LoadFactors)

	for i, want := range []int{0, 1, 2} {
		placed := tr.Frames[2*i+1]
		require.Equal(t, want, placed.StartIndex)
		require.Equal(t, want, placed.CurrentIndex)
		require.Equal(t, 0, placed.Probes)
		require.True(t, placed.Table[want].Occupied)
	}
}

func TestGenerateForcedCollision(t *testing.T) {
	tr, err := Generate([]string{"A", "F"}, 5, charMod5)
	require.NoError(t, err)

	step2 := framesOfStep(tr, 2)
	require.Equal(t, []Phase{PhaseStart, PhaseCollision, PhaseProbe, PhasePlaced}, phases(step2))

	type pos struct{ idx, probes int }
	var got []pos
	for _, f := range step2 {
		require.Equal(t, "F", f.Key)
		require.Equal(t, 0, f.StartIndex)
		got = append(got, pos{f.CurrentIndex, f.Probes})
	}
	require.Equal(t, []pos{{0, 0}, {0, 0}, {1, 1}, {1, 1}}, got)
	require.Equal(t, "A", step2[3].Table[0].Key)
	require.Equal(t, "F", step2[3].Table[1].Key)
	require.Equal(t, []float64{0.2, 0.4}, tr.LoadFactors)
}

func TestGenerateWrapsAround(t *testing.T) {
	// 'E' % 5 == 4 and 'J' % 5 == 4, so J has to wrap to slot 0
	tr, err := Generate([]string{"E", "J"}, 5, charMod5)
	require.NoError(t, err)
	step2 := framesOfStep(tr, 2)
	last := step2[len(step2)-1]
	require.True(t, last.Placed)
	require.Equal(t, 4, last.StartIndex)
	require.Equal(t, 0, last.CurrentIndex)
	require.Equal(t, 1, last.Probes)
}

func TestGenerateFillsTableExactly(t *testing.T) {
	// every key hashes to slot 0, so step n probes n-1 times
	keys := []string{"A", "F", "K", "P", "U"}
	tr, err := Generate(keys, 5, charMod5)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3, 4}, tr.StepProbes())
	require.Equal(t, 1.0, tr.LoadFactors[4])
	last := tr.Frames[tr.Len()-1]
	require.Equal(t, 5, last.Occupied())
	// start + 4 * (collision, probe) + placed
	require.Len(t, framesOfStep(tr, 5), 10)
}

func TestGenerateInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		tr, err := Generate([]string{"A"}, size, charMod5)
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Nil(t, tr)
	}
	_, err := Generate([]string{"A"}, 3, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateTableFull(t *testing.T) {
	tr, err := Generate([]string{"A", "B", "C", "D"}, 3, hash.FNV1a)
	require.ErrorIs(t, err, ErrTableFull)
	require.Nil(t, tr)

	var tfe *TableFullError
	require.ErrorAs(t, err, &tfe)
	require.Equal(t, 4, tfe.Step)
	require.Equal(t, "D", tfe.Key)
	require.Equal(t, 3, tfe.Size)
	require.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateSingleSlot(t *testing.T) {
	tr, err := Generate([]string{"x"}, 1, hash.FNV1a)
	require.NoError(t, err)
	require.Equal(t, []float64{1}, tr.LoadFactors)

	_, err = Generate([]string{"x", "x"}, 1, hash.FNV1a)
	require.ErrorIs(t, err, ErrTableFull)
}

func TestGenerateEmptyKeys(t *testing.T) {
	tr, err := Generate(nil, 4, hash.FNV1a)
	require.NoError(t, err)
	require.Equal(t, 0, tr.Len())
	require.Empty(t, tr.LoadFactors)
}

func TestGenerateDuplicates(t *testing.T) {
	tr, err := Generate([]string{"dup", "dup", "dup"}, 4, hash.FNV1a)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, tr.StepProbes())
	require.Equal(t, 3, tr.Frames[tr.Len()-1].Occupied())
}

func TestGenerateIntKeys(t *testing.T) {
	tr, err := Generate([]int{3, 10, 17}, 7, hash.Int)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, tr.StepProbes())
	last := tr.Frames[tr.Len()-1]
	require.Equal(t, 17, last.Table[5].Key)
}

func TestGenerateDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	keys := randomKeys(r, 18)
	for _, h := range []hash.Hasher[string]{hash.FNV1a, hash.XXHash32, hash.Polynomial} {
		a, err := Generate(keys, 20, h)
		require.NoError(t, err)
		b, err := Generate(keys, 20, h)
		require.NoError(t, err)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("traces differ (-first +second):\n%s", diff)
		}
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	tr, err := Generate([]string{"A", "F", "K"}, 5, charMod5)
	require.NoError(t, err)
	first := tr.Frames[0]
	for _, s := range first.Table {
		require.False(t, s.Occupied)
	}
	tr.Frames[1].Table[0].Key = "mutated"
	require.Equal(t, "A", tr.Frames[2].Table[0].Key)
}

// checkInvariants verifies the frame level guarantees of a finished trace
func checkInvariants[K any](t *testing.T, tr *Trace[K], nkeys int) {
	t.Helper()
	require.Len(t, tr.LoadFactors, nkeys)
	require.GreaterOrEqual(t, tr.Len(), nkeys)

	placedPerStep := make(map[int]int)
	framesPerStep := make(map[int]int)
	prevOccupied := 0
	for i, f := range tr.Frames {
		require.Len(t, f.Table, tr.Size)
		framesPerStep[f.Step]++
		if f.Phase == PhaseCollision {
			require.True(t, f.Table[f.CurrentIndex].Occupied, "frame %d", i)
		}
		if f.Placed {
			require.Equal(t, PhasePlaced, f.Phase)
			require.True(t, f.Table[f.CurrentIndex].Occupied)
			require.Equal(t, prevOccupied+1, f.Occupied(), "frame %d", i)
			prevOccupied = f.Occupied()
			placedPerStep[f.Step]++
			if i+1 < tr.Len() {
				require.Equal(t, f.Step+1, tr.Frames[i+1].Step)
			}
		} else {
			require.Equal(t, prevOccupied, f.Occupied(), "frame %d", i)
		}
		if i > 0 && tr.Frames[i-1].Step == f.Step {
			var diff int
			for j := range f.Table {
				if f.Table[j].Occupied != tr.Frames[i-1].Table[j].Occupied {
					diff++
				}
			}
			require.LessOrEqual(t, diff, 1)
		}
	}
	for step := 1; step <= nkeys; step++ {
		require.Equal(t, 1, placedPerStep[step], "step %d", step)
		// start and placed, plus a collision and a probe frame per collision
		require.Equal(t, 2+2*tr.StepProbes()[step-1], framesPerStep[step], "step %d", step)
		require.LessOrEqual(t, framesPerStep[step], 2*tr.Size, "step %d", step)
	}
	for i, lf := range tr.LoadFactors {
		require.Equal(t, float64(i+1)/float64(tr.Size), lf)
		require.LessOrEqual(t, lf, 1.0)
		if i > 0 {
			require.GreaterOrEqual(t, lf, tr.LoadFactors[i-1])
		}
	}
}

func TestGenerateInvariantsRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		size := 1 + r.Intn(24)
		nkeys := r.Intn(size + 1)
		keys := randomKeys(r, nkeys)
		tr, err := Generate(keys, size, hash.Polynomial)
		require.NoError(t, err, "size=%d keys=%v", size, keys)
		checkInvariants(t, tr, nkeys)

		_, err = Generate(append(keys, randomKeys(r, size-nkeys+1)...), size, hash.Polynomial)
		require.ErrorIs(t, err, ErrTableFull)
	}
}

func TestCompletedStepsAndPrefix(t *testing.T) {
	tr, err := Generate([]string{"A", "F"}, 5, charMod5)
	require.NoError(t, err)
	// frames: start(1) placed(1) start(2) collision(2) probe(2) placed(2)
	want := []int{0, 1, 1, 1, 1, 2}
	for i, n := range want {
		require.Equal(t, n, tr.CompletedSteps(i), "frame %d", i)
		require.Len(t, tr.LoadFactorPrefix(i), n)
	}
	prefix := tr.LoadFactorPrefix(5)
	prefix[0] = 99
	require.Equal(t, 0.2, tr.LoadFactors[0])
	require.Equal(t, 2, tr.StepStart(2))
	require.Equal(t, -1, tr.StepStart(3))
}

func TestExpectedProbes(t *testing.T) {
	require.Equal(t, 1.0, ExpectedProbes(0))
	require.Equal(t, 2.0, ExpectedProbes(0.5))
	require.True(t, ExpectedProbes(1) > 1e300)
}

func TestTraceJSON(t *testing.T) {
	// A and F share slot 0, so step 2 collides once
	tr, err := Generate([]string{"A", "F"}, 5, charMod5)
	require.NoError(t, err)
	require.Equal(t, PhaseCollision, tr.Frames[3].Phase)
	data, err := json.Marshal(tr)
	require.NoError(t, err)
	require.Contains(t, string(data), `"phase":"collision"`)
	require.Contains(t, string(data), `"table":[null,null,null,null,null]`)
	require.Contains(t, string(data), `"table":["A",null,null,null,null]`)

	var back Trace[string]
	require.NoError(t, json.Unmarshal(data, &back))
	if diff := cmp.Diff(tr, &back); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}
