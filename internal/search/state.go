// Package search implements the double-dummy position: SearchState apply
// and undo, move generation with rank-equivalence grouping, cheap
// trick-count bounds, a transposition table, and the alpha-beta search
// proper. It is grounded on bridgemoose's play.py for trick resolution
// and player rotation, and on the teacher chess engine's board/engine
// split (apply-undo with a pre-allocated undo stack, a depth-preferred
// transposition table) for the systems-level shape.
package search

import (
	"fmt"

	"github.com/hailam/bridgedds/internal/cardset"
)

// undoInfo records everything MakeMove needs to reverse, the same role
// the teacher's per-ply UndoInfo struct plays around MakeMove/UnmakeMove.
type undoInfo struct {
	mover        cardset.Direction
	card         cardset.Card
	prevCard     cardset.Card // TrickCards slot card overwrote
	prevTrickLen uint8
	prevTrickSuit cardset.Suit
	prevLeader   cardset.Direction
	wonTrick     bool
	winnerSide   int
}

// SearchState is the mutable double-dummy position threaded through
// alpha-beta: four remaining hands, the trick in progress, and the
// running trick tally per side. Apply/undo mutate it in place; the
// engine never copies a SearchState mid-search.
type SearchState struct {
	Hands [4]cardset.Hand
	Trump cardset.Strain
	Leader cardset.Direction

	TrickCards [4]cardset.Card
	TrickLen   uint8
	TrickSuit  cardset.Suit

	TricksWon [2]int // indexed by Direction.Side(): 0=West/East, 1=North/South
	TricksPlayed int

	undo []undoInfo
}

// NewSearchState builds a SearchState for the start of play: leader leads
// to the first trick of a fresh deal under the given trump strain.
func NewSearchState(deal cardset.Deal, trump cardset.Strain, leader cardset.Direction) *SearchState {
	s := &SearchState{
		Hands:  deal,
		Trump:  trump,
		Leader: leader,
		undo:   make([]undoInfo, 0, 52),
	}
	return s
}

// ToPlay returns the direction whose turn it is to play, derived from the
// trick leader and how many cards have already been played to the
// current trick.
func (s *SearchState) ToPlay() cardset.Direction { return s.Leader.Next(int(s.TrickLen)) }

// TricksRemaining returns how many tricks are left to play.
func (s *SearchState) TricksRemaining() int { return 13 - s.TricksPlayed }

// forcedFollowSuit reports the suit mover must follow, if any card of it
// remains in mover's hand.
func (s *SearchState) forcedFollowSuit(mover cardset.Direction) (cardset.Suit, bool) {
	if s.TrickLen == 0 {
		return 0, false
	}
	if !s.Hands[mover].Suit(s.TrickSuit).Empty() {
		return s.TrickSuit, true
	}
	return 0, false
}

// LegalCards returns the subset of mover's hand that may legally be
// played right now: the led suit if mover holds it, otherwise the whole
// hand.
func (s *SearchState) LegalCards() cardset.Hand {
	mover := s.ToPlay()
	hand := s.Hands[mover]
	if suit, forced := s.forcedFollowSuit(mover); forced {
		return hand.Suit(suit)
	}
	return hand
}

// MakeMove plays card c for the player to move, validating follow-suit
// legality, and resolves the trick if c completes it. It pushes an
// undoInfo onto the state's undo stack; call UnmakeMove to reverse it.
func (s *SearchState) MakeMove(c cardset.Card) error {
	mover := s.ToPlay()
	hand := s.Hands[mover]
	if !hand.Has(c) {
		return fmt.Errorf("%w: %s does not hold %s", ErrInvalidMove, mover, c)
	}
	if suit, forced := s.forcedFollowSuit(mover); forced && c.Suit != suit {
		return fmt.Errorf("%w: %s must follow suit %s", ErrInvalidMove, mover, suit)
	}

	u := undoInfo{
		mover:         mover,
		card:          c,
		prevCard:      s.TrickCards[s.TrickLen],
		prevTrickLen:  s.TrickLen,
		prevTrickSuit: s.TrickSuit,
		prevLeader:    s.Leader,
	}

	s.Hands[mover] = hand.Without(c)
	if s.TrickLen == 0 {
		s.TrickSuit = c.Suit
	}
	s.TrickCards[s.TrickLen] = c
	s.TrickLen++

	if s.TrickLen == 4 {
		winPos := s.resolveTrick()
		winner := s.Leader.Next(winPos)
		side := winner.Side()
		s.TricksWon[side]++
		s.TricksPlayed++
		u.wonTrick = true
		u.winnerSide = side
		s.Leader = winner
		s.TrickLen = 0
		s.TrickSuit = 0
	}

	s.undo = append(s.undo, u)
	return nil
}

// UnmakeMove reverses the most recent MakeMove.
func (s *SearchState) UnmakeMove() {
	n := len(s.undo)
	u := s.undo[n-1]
	s.undo = s.undo[:n-1]

	if u.wonTrick {
		s.TricksWon[u.winnerSide]--
		s.TricksPlayed--
		s.Leader = u.prevLeader
		s.TrickLen = 3
		s.TrickSuit = u.prevTrickSuit
	} else {
		s.TrickLen = u.prevTrickLen
		s.TrickSuit = u.prevTrickSuit
	}
	s.TrickCards[u.prevTrickLen] = u.prevCard
	s.Hands[u.mover] = s.Hands[u.mover].With(u.card)
}

// resolveTrick returns the winning card's position (0..3, relative to the
// trick's leader) among s.TrickCards, the highest card of the suit led
// unless overridden by a higher trump.
func (s *SearchState) resolveTrick() int {
	led := s.TrickCards[0].Suit
	best := 0
	for i := 1; i < 4; i++ {
		if s.beats(s.TrickCards[i], s.TrickCards[best], led) {
			best = i
		}
	}
	return best
}

func (s *SearchState) beats(c, cur cardset.Card, led cardset.Suit) bool {
	cTrump := s.Trump.IsTrump() && c.Suit == s.Trump.Suit()
	curTrump := s.Trump.IsTrump() && cur.Suit == s.Trump.Suit()
	if cTrump != curTrump {
		return cTrump
	}
	if cTrump && curTrump {
		return c.Rank > cur.Rank
	}
	if c.Suit != led {
		return false
	}
	if cur.Suit != led {
		return true
	}
	return c.Rank > cur.Rank
}
