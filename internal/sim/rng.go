package sim

import (
	"hash/fnv"
	"math/rand"
)

// subsystemRNG derives an independent deterministic stream from the world
// seed and a label such as "obstacles.base" or "waves.3". Streams with
// distinct labels never share state, so adding draws to one subsystem does
// not perturb another.
func (w *World) subsystemRNG(label string) *rand.Rand {
	seed := "prototype"
	if w != nil && w.config.Seed != "" {
		seed = w.config.Seed
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	h.Write([]byte{0})
	h.Write([]byte(label))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
