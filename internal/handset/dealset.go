package handset

import (
	"fmt"
	"math/big"

	"github.com/hailam/bridgedds/internal/bdd"
	"github.com/hailam/bridgedds/internal/cardset"
)

// DealSet is a predicate over whole deals, represented as a BDD handle over
// the Engine's 104-variable DealStore, always already intersected with the
// "valid four-way 13-13-13-13 partition" structural mask.
type DealSet struct {
	eng *Engine
	BDD bdd.Handle
}

// NewDealSet lifts a raw predicate into a DealSet by intersecting it with
// the engine's four-hands mask.
func (e *Engine) NewDealSet(predicate bdd.Handle) DealSet {
	return DealSet{eng: e, BDD: e.DealStore.And(predicate, e.fourHandsMask)}
}

// AnyDeal is the DealSet containing every valid deal.
func (e *Engine) AnyDeal() DealSet { return DealSet{eng: e, BDD: e.fourHandsMask} }

// Holds lifts a HandSet predicate into the DealSet of deals where direction
// dir's hand satisfies it, leaving the other three hands unconstrained.
// This is the DealSetConverter role from bridgemoose: it walks hs's BDD
// (over the 52 hand-level variables) and, for each card variable it tests,
// emits a two-variable owner-bit gadget selecting whether that card
// belongs to dir.
func (e *Engine) Holds(dir cardset.Direction, hs HandSet) DealSet {
	memo := make(map[bdd.Handle]bdd.Handle)
	lifted := liftHandBDD(e.HandStore, e.DealStore, hs.BDD, dir, memo)
	return e.NewDealSet(lifted)
}

func liftHandBDD(handStore, dealStore *bdd.Store, h bdd.Handle, dir cardset.Direction, memo map[bdd.Handle]bdd.Handle) bdd.Handle {
	if h == bdd.True {
		return bdd.True
	}
	if h == bdd.False {
		return bdd.False
	}
	if v, ok := memo[h]; ok {
		return v
	}

	cardIdx := int(handStore.VarOf(h))
	tLift := liftHandBDD(handStore, dealStore, handStore.ChildThen(h), dir, memo)
	eLift := liftHandBDD(handStore, dealStore, handStore.ChildElse(h), dir, memo)

	b0 := int32(2 * cardIdx)
	b1 := int32(2*cardIdx + 1)
	wantB0 := int(dir)&1 != 0
	wantB1 := int(dir)&2 != 0

	var innerMatch bdd.Handle
	if wantB1 {
		innerMatch = dealStore.Mk(b1, tLift, eLift)
	} else {
		innerMatch = dealStore.Mk(b1, eLift, tLift)
	}
	var out bdd.Handle
	if wantB0 {
		out = dealStore.Mk(b0, innerMatch, eLift)
	} else {
		out = dealStore.Mk(b0, eLift, innerMatch)
	}

	memo[h] = out
	return out
}

// And returns the intersection of a and b.
func (a DealSet) And(b DealSet) DealSet {
	return DealSet{eng: a.eng, BDD: a.eng.DealStore.And(a.BDD, b.BDD)}
}

// Or returns the union of a and b.
func (a DealSet) Or(b DealSet) DealSet {
	return DealSet{eng: a.eng, BDD: a.eng.DealStore.Or(a.BDD, b.BDD)}
}

// Not returns the complement of a, still restricted to valid deals.
func (a DealSet) Not() DealSet {
	return DealSet{eng: a.eng, BDD: a.eng.DealStore.AndNot(a.eng.fourHandsMask, a.BDD)}
}

// Count returns the number of deals satisfying the set.
func (a DealSet) Count() *big.Int { return a.eng.DealStore.Count(a.BDD) }

// Contains reports whether deal d satisfies the set.
func (a DealSet) Contains(d cardset.Deal) bool {
	bits := dealBits(d)
	return a.eng.DealStore.Eval(a.BDD, bits)
}

// Sample draws a uniformly random deal from the set using rng.
func (a DealSet) Sample(rng RNG) (cardset.Deal, error) {
	total := a.Count()
	if total.Sign() == 0 {
		return cardset.Deal{}, ErrEmptySet
	}
	k := rng.Int(total)
	bits, err := a.eng.DealStore.NthModel(a.BDD, k)
	if err != nil {
		return cardset.Deal{}, fmt.Errorf("handset: sample: %w", err)
	}
	return bitsToDeal(bits), nil
}

func dealBits(d cardset.Deal) []bool {
	bits := make([]bool, 104)
	for dirIdx, hand := range d {
		for i := 0; i < 52; i++ {
			if hand.Has(cardset.CardFromIndex(i)) {
				bits[2*i] = dirIdx&1 != 0
				bits[2*i+1] = dirIdx&2 != 0
			}
		}
	}
	return bits
}

func bitsToDeal(bits []bool) cardset.Deal {
	var d cardset.Deal
	for i := 0; i < 52; i++ {
		b0, b1 := bits[2*i], bits[2*i+1]
		dir := 0
		if b0 {
			dir |= 1
		}
		if b1 {
			dir |= 2
		}
		d[dir] = d[dir].With(cardset.CardFromIndex(i))
	}
	return d
}
