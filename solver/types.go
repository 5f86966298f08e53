// Package solver is the public surface: batched double-dummy board
// solving and play analysis over the internal cardset/search/scheduler
// stack, the same role the teacher's cmd/chessplay-uci-facing Engine type
// plays for the chess search.
package solver

import "github.com/hailam/bridgedds/internal/cardset"

// BoardRequest is one board to solve: a full deal, the trump strain, and
// which hand leads to the first trick.
type BoardRequest struct {
	Deal   cardset.Deal
	Strain cardset.Strain
	Leader cardset.Direction
}

// PlayRequest asks for a play analysis: solveBoard plus a history of cards
// already played from Leader's opening lead.
type PlayRequest struct {
	BoardRequest
	History []cardset.Card
}

// PlayStep is one entry of a PlayAnalyse result: before Card was played,
// the side then to play could have taken Tricks more from that point on.
type PlayStep struct {
	Index  int
	Card   cardset.Card
	Tricks int
}

// ManyPlaysRequest asks for every legal next card after Prefix to be
// ranked by the tricks it yields for the side choosing it.
type ManyPlaysRequest struct {
	BoardRequest
	Prefix       []cardset.Card
	WantWinRanks bool
}

// CardResult ranks one legal card: Tricks is the total the side that
// played it goes on to take (including the trick it wins, if any),
// counting from the position where it was legal to play.
type CardResult struct {
	Card   cardset.Card
	Tricks int
}

// ManyPlaysResult is one request's ranked cards plus, if requested, the
// per-suit winning rank: the lowest rank in that suit which still reaches
// the best trick total any card of that suit achieves. Two deals whose
// only difference is a spot-card swap above that rank are provably
// equivalent for double-dummy purposes, which is what upstream Monte
// Carlo samplers use this for.
type ManyPlaysResult struct {
	Cards []CardResult

	// WinningRank and WinningRankSet are indexed by cardset.Suit; a suit
	// has no entry (WinningRankSet[suit] == false) if no legal card was
	// available in it.
	WinningRank    [4]cardset.Rank
	WinningRankSet [4]bool
}
