package service

import (
	"math/rand/v2"
)

// NewRand returns a random source owned by a single reconciliation. A nil seed draws a
// fresh one from the runtime generator.
func NewRand(seed *uint64) *rand.Rand {
	var s uint64
	if seed != nil {
		s = *seed
	} else {
		s = rand.Uint64()
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
