// Package limpet implements the sampling, merging, and reformatting
// operations behind the CLI commands.
package limpet

import (
	"math/rand"
	"time"
)

// NewRand builds the run's random generator. A run owns exactly one
// generator, created here and handed to whichever operation needs it, so a
// fixed seed reproduces the run byte for byte. When seeded is false the
// generator is time-derived and the run is not reproducible.
func NewRand(seed int64, seeded bool) *rand.Rand {
	if !seeded {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
