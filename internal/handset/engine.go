// Package handset implements the BDD-backed hand and deal constraint
// engine: HandSet and DealSet (predicates over one hand's or one deal's
// card assignment) and HandSetMetric (integer-valued functions of a hand,
// such as high-card points, compared and combined via BDD set algebra).
// It is grounded on bridgemoose's handset.py, adapted to the canonical
// suit*13+rank variable order mandated by spec §3 rather than bridgemoose's
// own AKQJ-first ordering (a performance tweak in the original that this
// engine's BDD variable order supersedes).
package handset

import (
	"sync"

	"github.com/hailam/bridgedds/internal/bdd"
)

// Engine owns the two BDD variable domains the package works over: a
// 52-variable HandStore (one boolean per card, "does this hand hold it")
// and a 104-variable DealStore (two owner bits per card, "which of the
// four hands holds it"). Both carry a precomputed structural mask —
// handMask restricts HandStore predicates to exactly-13-card hands,
// fourHandsMask restricts DealStore predicates to valid four-way partitions
// of the 52 cards into 13-card hands each.
type Engine struct {
	HandStore *bdd.Store
	DealStore *bdd.Store

	handMask      bdd.Handle
	fourHandsMask bdd.Handle

	shapeOnce  sync.Once
	shapeJoint map[[4]int]bdd.Handle
}

// NewEngine builds a fresh Engine, constructing both structural masks via
// bottom-up dynamic programs (the same shape bridgemoose's DealSetConverter
// uses to build its "four hands" constraint, generalized here to also cover
// the simpler one-hand case).
func NewEngine() *Engine {
	e := &Engine{
		HandStore: bdd.NewStore(52),
		DealStore: bdd.NewStore(104),
	}
	e.handMask = buildExactCount(e.HandStore, 52, 13)
	e.fourHandsMask = buildFourHandsEach13(e.DealStore)
	return e
}

// buildExactCount builds the BDD over variables [0,numVars) that is true
// iff exactly target of them are set, via a bottom-up DP on (variable
// index, remaining count needed), memoized across the whole construction.
func buildExactCount(store *bdd.Store, numVars, target int) bdd.Handle {
	type state struct{ v, remaining int }
	memo := make(map[state]bdd.Handle)
	var build func(v, remaining int) bdd.Handle
	build = func(v, remaining int) bdd.Handle {
		if remaining < 0 || remaining > numVars-v {
			return bdd.False
		}
		if v == numVars {
			if remaining == 0 {
				return bdd.True
			}
			return bdd.False
		}
		key := state{v, remaining}
		if h, ok := memo[key]; ok {
			return h
		}
		take := build(v+1, remaining-1)
		skip := build(v+1, remaining)
		h := store.Mk(int32(v), take, skip)
		memo[key] = h
		return h
	}
	return build(0, target)
}

// buildFourHandsEach13 builds the DealStore BDD that is true iff the 104
// owner-bit variables encode a valid assignment of each of the 52 cards to
// exactly one of four directions, with each direction receiving exactly 13.
// Card c's owner is encoded by two adjacent variables (b0=2c, b1=2c+1) as
// 2*b1+b0, matching cardset.Direction's West=0,North=1,East=2,South=3.
func buildFourHandsEach13(store *bdd.Store) bdd.Handle {
	type state struct{ card int; remaining [4]int8 }
	memo := make(map[state]bdd.Handle)

	var build func(card int, remaining [4]int8) bdd.Handle
	build = func(card int, remaining [4]int8) bdd.Handle {
		if card == 52 {
			if remaining == ([4]int8{}) {
				return bdd.True
			}
			return bdd.False
		}
		key := state{card, remaining}
		if h, ok := memo[key]; ok {
			return h
		}

		branchFor := func(dir int) bdd.Handle {
			if remaining[dir] <= 0 {
				return bdd.False
			}
			next := remaining
			next[dir]--
			return build(card+1, next)
		}
		west, north, east, south := branchFor(0), branchFor(1), branchFor(2), branchFor(3)

		b0 := int32(2 * card)
		b1 := int32(2*card + 1)
		innerB0True := store.Mk(b1, south, north)  // b0=1 (odd owner): b1=1->South, b1=0->North
		innerB0False := store.Mk(b1, east, west)   // b0=0 (even owner): b1=1->East, b1=0->West
		h := store.Mk(b0, innerB0True, innerB0False)

		memo[key] = h
		return h
	}

	return build(0, [4]int8{13, 13, 13, 13})
}
