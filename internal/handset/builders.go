package handset

import (
	"github.com/hailam/bridgedds/internal/bdd"
	"github.com/hailam/bridgedds/internal/cardset"
)

// buildScoreMetric builds a score->predicate map for an additive per-card
// scoring function over a Store of numVars boolean "is this card in hand"
// variables, via the same bottom-up dynamic program bridgemoose's
// SimpleHandMetric.__init__ runs over a plain dict: process variables from
// the highest index down to 0, and at each step fold the new variable's
// two outcomes (present, absent) into every score already reachable from
// the levels below it.
func buildScoreMetric(store *bdd.Store, numVars int, cardScore func(v int) int) map[int]bdd.Handle {
	cur := map[int]bdd.Handle{0: bdd.True}
	for v := numVars - 1; v >= 0; v-- {
		s := cardScore(v)
		next := make(map[int]bdd.Handle)
		seen := make(map[int]struct{}, 2*len(cur))
		for score := range cur {
			seen[score] = struct{}{}
			seen[score+s] = struct{}{}
		}
		for r := range seen {
			skipH, ok := cur[r]
			if !ok {
				skipH = bdd.False
			}
			takeH, ok := cur[r-s]
			if !ok {
				takeH = bdd.False
			}
			if skipH == bdd.False && takeH == bdd.False {
				continue
			}
			h := store.Mk(int32(v), takeH, skipH)
			if h != bdd.False {
				next[r] = h
			}
		}
		cur = next
	}
	return cur
}

// HCP is the standard 4-3-2-1 high-card point count.
func (e *Engine) HCP() Metric {
	return e.NewMetric(buildScoreMetric(e.HandStore, 52, func(v int) int {
		switch cardset.CardFromIndex(v).Rank {
		case 12:
			return 4
		case 11:
			return 3
		case 10:
			return 2
		case 9:
			return 1
		default:
			return 0
		}
	}))
}

// Controls counts aces as 2 and kings as 1.
func (e *Engine) Controls() Metric {
	return e.NewMetric(buildScoreMetric(e.HandStore, 52, func(v int) int {
		switch cardset.CardFromIndex(v).Rank {
		case 12:
			return 2
		case 11:
			return 1
		default:
			return 0
		}
	}))
}

// TopN counts how many of suit s's top n ranks (ace downward) the hand
// holds — TopN(Spades, 3) is a spade's AKQ count, for instance.
func (e *Engine) TopN(s cardset.Suit, n int) Metric {
	return e.NewMetric(buildScoreMetric(e.HandStore, 52, func(v int) int {
		c := cardset.CardFromIndex(v)
		if c.Suit == s && int(c.Rank) >= 13-n {
			return 1
		}
		return 0
	}))
}

// SuitLength is the number of cards the hand holds in suit s.
func (e *Engine) SuitLength(s cardset.Suit) Metric {
	return e.NewMetric(buildScoreMetric(e.HandStore, 52, func(v int) int {
		if cardset.CardFromIndex(v).Suit == s {
			return 1
		}
		return 0
	}))
}

// suitQuickTricks builds one suit's quick-trick contribution, scored at
// double value so the result stays integral (AK=4, AQ=3, A=2, KQ=2, K=1,
// everything else 0). This is the minterm-by-minterm case analysis of
// bridgemoose's QuickTricksMetric.suit_values, expressed directly as BDD
// literal conjunctions instead of Python tuple dispatch.
func (e *Engine) suitQuickTricks(s cardset.Suit) Metric {
	store := e.HandStore
	litA := store.Var(cardset.Card{Suit: s, Rank: 12}.Index())
	litK := store.Var(cardset.Card{Suit: s, Rank: 11}.Index())
	litQ := store.Var(cardset.Card{Suit: s, Rank: 10}.Index())

	type combo struct {
		a, k, q bool
		score   int
	}
	combos := []combo{
		{true, true, true, 4},
		{true, true, false, 4},
		{true, false, true, 3},
		{true, false, false, 2},
		{false, true, true, 2},
		{false, true, false, 1},
		{false, false, true, 0},
		{false, false, false, 0},
	}

	lit := func(base bdd.Handle, want bool) bdd.Handle {
		if want {
			return base
		}
		return store.Not(base)
	}

	vals := make(map[int]bdd.Handle)
	for _, c := range combos {
		h := store.And(store.And(lit(litA, c.a), lit(litK, c.k)), lit(litQ, c.q))
		if h == bdd.False {
			continue
		}
		if existing, ok := vals[c.score]; ok {
			vals[c.score] = store.Or(existing, h)
		} else {
			vals[c.score] = h
		}
	}
	return e.NewMetric(vals)
}

// QuickTricks is the hand's total quick-trick count across all four suits,
// doubled so the result is an integer (a value of 3 means 1.5 quick
// tricks).
func (e *Engine) QuickTricks() Metric {
	qt := e.suitQuickTricks(cardset.Clubs)
	for _, s := range []cardset.Suit{cardset.Diamonds, cardset.Hearts, cardset.Spades} {
		qt = qt.Add(e.suitQuickTricks(s))
	}
	return qt
}

// AtLeast returns the HandSet of hands holding every one of the given
// ranks in suit s — the "does this suit have at least these honors"
// matcher used by shape/quality specs such as requiring AKQ in the trump
// suit.
func (e *Engine) AtLeast(s cardset.Suit, ranks ...cardset.Rank) HandSet {
	hs := e.Any()
	for _, r := range ranks {
		hs = hs.And(e.CardIn(cardset.Card{Suit: s, Rank: r}))
	}
	return hs
}

// shapeJointBDDs builds, once per Engine and lazily, the map from exact
// four-suit length pattern (indexed [Clubs,Diamonds,Hearts,Spades]) to the
// predicate of hands holding exactly that pattern. It is assembled by
// intersecting the four per-suit length metrics' buckets pairwise and
// discarding combinations whose suit lengths don't sum to 13 — the same
// per-suit-then-combine approach as bridgemoose's ShapeMaker.get_pattern_bdds,
// generalized from its fixed suit order to the four cardset.Suit values.
func (e *Engine) shapeJointBDDs() map[[4]int]bdd.Handle {
	e.shapeOnce.Do(func() {
		store := e.HandStore
		clubs := e.SuitLength(cardset.Clubs).Values()
		diamonds := e.SuitLength(cardset.Diamonds).Values()
		hearts := e.SuitLength(cardset.Hearts).Values()
		spades := e.SuitLength(cardset.Spades).Values()

		out := make(map[[4]int]bdd.Handle)
		for lc, hc := range clubs {
			for ld, hd := range diamonds {
				if lc+ld > 13 {
					continue
				}
				cd := store.And(hc, hd)
				if cd == bdd.False {
					continue
				}
				for lh, hh := range hearts {
					if lc+ld+lh > 13 {
						continue
					}
					cdh := store.And(cd, hh)
					if cdh == bdd.False {
						continue
					}
					ls := 13 - lc - ld - lh
					hsp, ok := spades[ls]
					if !ok {
						continue
					}
					final := store.And(cdh, hsp)
					if final == bdd.False {
						continue
					}
					out[[4]int{lc, ld, lh, ls}] = final
				}
			}
		}
		e.shapeJoint = out
	})
	return e.shapeJoint
}

// ShapeEq returns the HandSet of hands whose exact suit lengths, indexed
// [Clubs,Diamonds,Hearts,Spades], equal pattern.
func (e *Engine) ShapeEq(pattern [4]int) HandSet {
	h, ok := e.shapeJointBDDs()[pattern]
	if !ok {
		h = bdd.False
	}
	return e.NewHandSet(h)
}

func maxOf4(a [4]int) int {
	m := a[0]
	for _, x := range a[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf4(a [4]int) int {
	m := a[0]
	for _, x := range a[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func secondOf4(a [4]int) int {
	sorted := a
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if sorted[j] > sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	return sorted[1]
}

func (e *Engine) orderedLengthMetric(pick func([4]int) int) Metric {
	store := e.HandStore
	vals := make(map[int]bdd.Handle)
	for lens, h := range e.shapeJointBDDs() {
		score := pick(lens)
		if existing, ok := vals[score]; ok {
			vals[score] = store.Or(existing, h)
		} else {
			vals[score] = h
		}
	}
	return e.NewMetric(vals)
}

// LongestSuit is the length of the hand's longest suit.
func (e *Engine) LongestSuit() Metric { return e.orderedLengthMetric(maxOf4) }

// SecondLongestSuit is the length of the hand's second-longest suit.
func (e *Engine) SecondLongestSuit() Metric { return e.orderedLengthMetric(secondOf4) }

// ShortestSuit is the length of the hand's shortest suit.
func (e *Engine) ShortestSuit() Metric { return e.orderedLengthMetric(minOf4) }
