package search

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/hailam/bridgedds/internal/cardset"
)

// PositionFingerprint is a SearchState key modulo rank equivalence:
// cards played to finished tricks are erased, and each hand's remaining
// holding in a suit is compressed onto dense positions among that suit's
// still-live ranks (a rank is live while a hand holds it or it lies on the
// table in the current trick; other ranks are simply absent, so two ranks
// with nothing live between them collapse to adjacent positions). This is
// the resolution chosen for the open question of what "the"
// rank-equivalence key is: a dense per-suit bitmask over live ranks,
// recomputed from the live SearchState the way the teacher engine
// recomputes (rather than increments) anything not cheap to carry
// incrementally.
//
// Side records which side canAchieve's target is scored for. The stored
// (lo,hi) bounds a TransTable entry carries are meaningless without it —
// "side 0 can get at least t" and "side 1 can get at least t" are
// different claims about the identical board position — so two probes of
// the same position for different sides must never collide on the same
// entry.
type PositionFingerprint struct {
	Hands      [4][4]uint16 // [Direction][Suit] compressed rank bitmask
	Trump      cardset.Strain
	ToPlay     cardset.Direction
	TrickSuit  cardset.Suit
	TrickLen   uint8
	TrickCards [3]cardset.Card
	Side       uint8
}

// Fingerprint computes s's PositionFingerprint for the given scoring
// side (0 or 1, as passed to Solve/canAchieve).
func (s *SearchState) Fingerprint(side int) PositionFingerprint {
	var live cardset.CardSet
	for _, h := range s.Hands {
		live |= h
	}
	for i := 0; i < int(s.TrickLen); i++ {
		live = live.With(s.TrickCards[i])
	}

	var fp PositionFingerprint
	for suit := cardset.Clubs; suit <= cardset.Spades; suit++ {
		liveSuit := live.Suit(suit)
		for dir := cardset.West; dir <= cardset.South; dir++ {
			fp.Hands[dir][suit] = compressSuit(s.Hands[dir].Suit(suit), liveSuit, suit)
		}
	}
	fp.Trump = s.Trump
	fp.ToPlay = s.ToPlay()
	fp.TrickSuit = s.TrickSuit
	fp.TrickLen = s.TrickLen
	copy(fp.TrickCards[:], s.TrickCards[:3])
	fp.Side = uint8(side)
	return fp
}

// compressSuit maps handBits (a subset of liveBits, both restricted to
// one suit) onto a dense bitmask indexed by rank's position among
// liveBits' ranks in ascending order.
func compressSuit(handBits, liveBits cardset.CardSet, suit cardset.Suit) uint16 {
	var out uint16
	idx := 0
	for r := 0; r < 13; r++ {
		c := cardset.Card{Suit: suit, Rank: cardset.Rank(r)}
		if !liveBits.Has(c) {
			continue
		}
		if handBits.Has(c) {
			out |= 1 << uint(idx)
		}
		idx++
	}
	return out
}

// Hash folds the fingerprint into a single uint64 for transposition table
// indexing via xxhash, the same role the teacher's Zobrist hash plays,
// computed freshly per position rather than incrementally since a
// fingerprint's compression can shift on every card played.
func (p PositionFingerprint) Hash() uint64 {
	var buf [4*4*2 + 1 + 1 + 1 + 1 + 3*2 + 1]byte
	i := 0
	for dir := 0; dir < 4; dir++ {
		for suit := 0; suit < 4; suit++ {
			binary.LittleEndian.PutUint16(buf[i:], p.Hands[dir][suit])
			i += 2
		}
	}
	buf[i] = byte(p.Trump)
	i++
	buf[i] = byte(p.ToPlay)
	i++
	buf[i] = byte(p.TrickSuit)
	i++
	buf[i] = p.TrickLen
	i++
	for _, c := range p.TrickCards {
		buf[i] = byte(c.Suit)
		buf[i+1] = byte(c.Rank)
		i += 2
	}
	buf[i] = p.Side
	i++
	return xxhash.Sum64(buf[:i])
}
