package sim

import (
	"fmt"
	"math/rand"
)

// GenerateKeys returns the keys k0 through k(n-1) shuffled with seed. The
// same n and seed always give the same order.
func GenerateKeys(n int, seed int64) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	return keys
}
