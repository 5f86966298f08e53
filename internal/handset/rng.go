package handset

import (
	"math/big"

	"lukechampine.com/frand"
)

// DefaultRNG implements RNG over lukechampine.com/frand, a ChaCha8-backed
// CSPRNG. frand.New returns a *math/rand.Rand backed by that CSPRNG, which
// math/big.Int.Rand accepts directly — deal counts routinely exceed what
// any fixed machine integer can hold, so the draw has to go through
// math/big rather than Intn.
type DefaultRNG struct{}

// Int returns a uniform random integer in [0, max).
func (DefaultRNG) Int(max *big.Int) *big.Int {
	return new(big.Int).Rand(frand.New(), max)
}
