package search

import "github.com/hailam/bridgedds/internal/cardset"

// SideQuickTricks is a sound lower bound on the number of remaining
// tricks side (0 = West/East, 1 = North/South) is guaranteed to take
// regardless of the defense's play. Only the hand on lead to a fresh
// trick is ever credited: if that hand belongs to side, it can lead its own
// top-of-suit run right now and keep winning (and therefore keep the
// lead) for as long as the run lasts, with no cross-hand entry needed —
// the run's soundness does not depend on anything the opposing side
// chooses to do. A run held by side's *other* hand is not counted: that
// hand getting the lead at all is exactly the kind of entry question a
// quick-tricks estimate cannot answer without search, so crediting it
// here would be an unsound (not merely loose) bound. If side does not
// hold the lead, side is not guaranteed anything immediately, since the
// opponent on play controls what gets led next; in the middle of a trick
// nobody can lead, so the bound is 0 there as well.
//
// As with the single-hand case, a run is immune to a ruff exactly when
// it sits in the trump suit (trump always wins) or there is no trump at
// all — a side-suit run can in principle be overruffed or ruffed by a
// void defender under a trump contract, so it is not counted there. The
// total is capped at the tricks actually remaining, since a position with
// few tricks left can otherwise sum multiple suits' runs past what there
// is left to win.
func (s *SearchState) SideQuickTricks(side int) int {
	mover := s.ToPlay()
	if mover.Side() != side || s.TrickLen != 0 {
		return 0
	}
	total := 0
	for suit := cardset.Clubs; suit <= cardset.Spades; suit++ {
		if s.Trump.IsTrump() && suit != s.Trump.Suit() {
			continue
		}
		total += s.topRunLength(mover, suit)
	}
	if remaining := s.TricksRemaining(); total > remaining {
		total = remaining
	}
	return total
}

// topRunLength returns how many of the globally highest still-live cards
// in suit dir's hand holds consecutively from the top.
func (s *SearchState) topRunLength(dir cardset.Direction, suit cardset.Suit) int {
	var live cardset.CardSet
	for _, h := range s.Hands {
		live |= h
	}
	liveSuit := live.Suit(suit)
	count := 0
	for r := 12; r >= 0; r-- {
		c := cardset.Card{Suit: suit, Rank: cardset.Rank(r)}
		if !liveSuit.Has(c) {
			continue
		}
		if s.Hands[dir].Has(c) {
			count++
		} else {
			break
		}
	}
	return count
}

// SideLaterTricks is a sound upper bound on side's remaining tricks:
// everything left to play, minus whatever the opposing side is already
// guaranteed per SideQuickTricks (those tricks cannot also go to side).
func (s *SearchState) SideLaterTricks(side int) int {
	return s.TricksRemaining() - s.SideQuickTricks(1-side)
}

// Partition-equivalence pruning (spec §4.4's "holdings that cannot affect
// outcome collapse to one") is the same live-rank adjacency rule
// EquivalenceClasses already applies during move generation: a suit whose
// remaining cards form one unbroken run (across every hand) yields a
// single EquivalenceClass covering the whole holding, so alpha-beta
// already only branches once for it — no separate data structure is
// needed on top of movegen.go's grouping.
