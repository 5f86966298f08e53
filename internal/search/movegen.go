package search

import "github.com/hailam/bridgedds/internal/cardset"

// EquivalenceClass is one representative move and the full set of ranks
// it stands in for. Two ranks held by the mover belong to the same class
// iff no rank still live (held by any of the four hands, or lying on the
// table in the current trick) lies strictly
// between them in that suit — such ranks are provably interchangeable
// under double-dummy play, since nothing that could distinguish their
// outcomes remains on the table.
type EquivalenceClass struct {
	Representative cardset.Card
	Members        []cardset.Card // ascending rank order; Members[0] == Representative
}

// EquivalenceClasses returns one class per group of interchangeable legal
// plays for the player to move: the mover's legal cards (the led suit if
// held, otherwise the whole hand), grouped per suit by the live-rank
// adjacency rule above.
func (s *SearchState) EquivalenceClasses() []EquivalenceClass {
	mover := s.ToPlay()
	hand := s.Hands[mover]

	var live cardset.CardSet
	for _, h := range s.Hands {
		live |= h
	}
	for i := 0; i < int(s.TrickLen); i++ {
		live = live.With(s.TrickCards[i])
	}

	if suit, forced := s.forcedFollowSuit(mover); forced {
		return groupSuit(hand, live, suit)
	}

	var out []EquivalenceClass
	for suit := cardset.Clubs; suit <= cardset.Spades; suit++ {
		if hand.Suit(suit).Empty() {
			continue
		}
		out = append(out, groupSuit(hand, live, suit)...)
	}
	return out
}

// groupSuit scans suit's live ranks in ascending order, extending the
// current run with each rank the mover holds and closing it at each live
// rank the mover does NOT hold (that rank is a gap no mover-held run can
// cross).
func groupSuit(hand, live cardset.CardSet, suit cardset.Suit) []EquivalenceClass {
	var out []EquivalenceClass
	var run []cardset.Card
	flush := func() {
		if len(run) == 0 {
			return
		}
		out = append(out, EquivalenceClass{Representative: run[0], Members: run})
		run = nil
	}
	for r := 0; r < 13; r++ {
		c := cardset.Card{Suit: suit, Rank: cardset.Rank(r)}
		if !live.Has(c) {
			continue
		}
		if hand.Has(c) {
			run = append(run, c)
		} else {
			flush()
		}
	}
	flush()
	return out
}

// LegalPlays flattens EquivalenceClasses back into the full list of legal
// cards, in ascending rank order within each class — used where callers
// need every legal card rather than one representative per class (e.g.
// solveManyPlays, which must report a result for every legal card).
func (s *SearchState) LegalPlays() []cardset.Card {
	var out []cardset.Card
	for _, class := range s.EquivalenceClasses() {
		out = append(out, class.Members...)
	}
	return out
}
