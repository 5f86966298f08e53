package handset

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hailam/bridgedds/internal/bdd"
	"github.com/hailam/bridgedds/internal/cardset"
)

// ErrEmptySet is returned by Sample when the set has no members.
var ErrEmptySet = errors.New("handset: empty set has no member to sample")

// RNG is the minimal randomness source HandSet/DealSet.Sample needs: a
// uniform random integer in [0, max). max is always positive. Deal counts
// routinely exceed 2^64, so the draw is big.Int-valued throughout. The
// package's DefaultRNG implements this over lukechampine.com/frand; tests
// pass a seeded stand-in for reproducibility.
type RNG interface {
	Int(max *big.Int) *big.Int
}

// HandSet is a predicate over single 13-card hands, represented as a BDD
// handle over the Engine's 52-variable HandStore, always already
// intersected with the "exactly 13 cards" structural mask.
type HandSet struct {
	eng *Engine
	BDD bdd.Handle
}

// NewHandSet lifts a raw predicate (not yet known to respect the 13-card
// constraint) into a HandSet by intersecting it with the engine's hand
// mask — the same role bridgemoose's HandSet.HAND plays.
func (e *Engine) NewHandSet(predicate bdd.Handle) HandSet {
	return HandSet{eng: e, BDD: e.HandStore.And(predicate, e.handMask)}
}

// Any is the HandSet containing every possible 13-card hand.
func (e *Engine) Any() HandSet { return HandSet{eng: e, BDD: e.handMask} }

// None is the empty HandSet.
func (e *Engine) None() HandSet { return HandSet{eng: e, BDD: bdd.False} }

// CardIn returns the HandSet of hands holding card c.
func (e *Engine) CardIn(c cardset.Card) HandSet {
	return e.NewHandSet(e.HandStore.Var(c.Index()))
}

// And returns the intersection of a and b.
func (a HandSet) And(b HandSet) HandSet {
	return HandSet{eng: a.eng, BDD: a.eng.HandStore.And(a.BDD, b.BDD)}
}

// Or returns the union of a and b.
func (a HandSet) Or(b HandSet) HandSet {
	return HandSet{eng: a.eng, BDD: a.eng.HandStore.Or(a.BDD, b.BDD)}
}

// Not returns the complement of a, still restricted to valid 13-card hands.
func (a HandSet) Not() HandSet {
	return HandSet{eng: a.eng, BDD: a.eng.HandStore.AndNot(a.eng.handMask, a.BDD)}
}

// Count returns the number of hands satisfying the set.
func (a HandSet) Count() *big.Int { return a.eng.HandStore.Count(a.BDD) }

// Contains reports whether hand h satisfies the set, by walking the BDD
// along h's variable assignment.
func (a HandSet) Contains(h cardset.Hand) bool {
	bits := handBits(h)
	return a.eng.HandStore.Eval(a.BDD, bits)
}

// Sample draws a uniformly random hand from the set using rng.
func (a HandSet) Sample(rng RNG) (cardset.Hand, error) {
	total := a.Count()
	if total.Sign() == 0 {
		return 0, ErrEmptySet
	}
	k := rng.Int(total)
	bits, err := a.eng.HandStore.NthModel(a.BDD, k)
	if err != nil {
		return 0, fmt.Errorf("handset: sample: %w", err)
	}
	return bitsToHand(bits), nil
}

func handBits(h cardset.Hand) []bool {
	bits := make([]bool, 52)
	for i := 0; i < 52; i++ {
		bits[i] = h.Has(cardset.CardFromIndex(i))
	}
	return bits
}

func bitsToHand(bits []bool) cardset.Hand {
	var h cardset.Hand
	for i, b := range bits {
		if b {
			h = h.With(cardset.CardFromIndex(i))
		}
	}
	return h
}
