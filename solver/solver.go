package solver

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/hailam/bridgedds/internal/cardset"
	"github.com/hailam/bridgedds/internal/scheduler"
	"github.com/hailam/bridgedds/internal/search"
)

// Solver is the batch entry point over a worker pool, matching the
// teacher's thin Engine-over-workers wrapper: construct once, call many
// times, reuse every worker's transposition table across calls.
type Solver struct {
	sc *scheduler.Scheduler
}

// New builds a Solver with numWorkers workers (runtime.GOMAXPROCS(0) if
// <= 0), each with a TransTable sized ttSizeMB megabytes.
func New(numWorkers, ttSizeMB int) *Solver {
	return &Solver{sc: scheduler.New(numWorkers, ttSizeMB)}
}

// SolveBoard returns the number of tricks req.Leader's side can guarantee
// from the opening lead, assuming perfect defense.
func (s *Solver) SolveBoard(req BoardRequest) (int, error) {
	if err := req.Deal.Validate(); err != nil {
		return 0, err
	}
	w := s.sc.Worker(0)
	return w.SolveBoard(req.Deal, req.Strain, req.Leader), nil
}

// SolveManyBoards solves every request and returns results in request
// order. A validation failure in one request aborts only that slot — its
// result is reported through errs at the same index — while an internal
// engine error aborts the whole batch and is returned directly.
func (s *Solver) SolveManyBoards(ctx context.Context, reqs []BoardRequest) ([]int, []error, error) {
	results := make([]int, len(reqs))
	errs := make([]error, len(reqs))
	valid := make([]scheduler.BoardRequest, 0, len(reqs))
	validIdx := make([]int, 0, len(reqs))

	for i, req := range reqs {
		if err := req.Deal.Validate(); err != nil {
			errs[i] = &BatchError{Index: i, Err: err}
			continue
		}
		valid = append(valid, scheduler.BoardRequest{Deal: req.Deal, Trump: req.Strain, Leader: req.Leader})
		validIdx = append(validIdx, i)
	}

	solved, err := s.sc.SolveBoards(ctx, valid)
	if err != nil {
		return nil, nil, err
	}
	for j, idx := range validIdx {
		results[idx] = solved[j]
	}
	return results, errs, nil
}

// PlayAnalyse replays req.History from req.Leader's opening lead and, for
// each card, reports how many tricks the side then to play could have
// taken from that sub-position — before the card in question was played.
func (s *Solver) PlayAnalyse(req PlayRequest) ([]PlayStep, error) {
	if err := req.Deal.Validate(); err != nil {
		return nil, err
	}
	state := search.NewSearchState(req.Deal, req.Strain, req.Leader)
	w := s.sc.Worker(0)

	steps := make([]PlayStep, 0, len(req.History))
	for i, c := range req.History {
		tricks := w.SolveFrom(state)
		if err := state.MakeMove(c); err != nil {
			return nil, fmt.Errorf("history move %d (%s): %w", i, c, err)
		}
		steps = append(steps, PlayStep{Index: i, Card: c, Tricks: tricks})
	}
	return steps, nil
}

// SolveManyPlays ranks every legal card after req.Prefix by the tricks its
// side goes on to take, optionally tagging the minimum rank per suit that
// still reaches that suit's best result.
func (s *Solver) SolveManyPlays(req ManyPlaysRequest) (ManyPlaysResult, error) {
	if err := req.Deal.Validate(); err != nil {
		return ManyPlaysResult{}, err
	}
	state := search.NewSearchState(req.Deal, req.Strain, req.Leader)
	for i, c := range req.Prefix {
		if err := state.MakeMove(c); err != nil {
			return ManyPlaysResult{}, fmt.Errorf("prefix move %d (%s): %w", i, c, err)
		}
	}

	w := s.sc.Worker(0)
	side := state.ToPlay().Side()

	var out ManyPlaysResult
	out.Cards = lo.FlatMap(state.EquivalenceClasses(), func(class search.EquivalenceClass, _ int) []CardResult {
		total := classTotal(state, w, side, class.Representative)
		return lo.Map(class.Members, func(c cardset.Card, _ int) CardResult {
			return CardResult{Card: c, Tricks: total}
		})
	})

	sort.Slice(out.Cards, func(i, j int) bool {
		if out.Cards[i].Tricks != out.Cards[j].Tricks {
			return out.Cards[i].Tricks > out.Cards[j].Tricks
		}
		return out.Cards[i].Card.Index() < out.Cards[j].Card.Index()
	})

	if req.WantWinRanks {
		bestBySuit := [4]int{-1, -1, -1, -1}
		for _, cr := range out.Cards {
			suit := cr.Card.Suit
			if cr.Tricks > bestBySuit[suit] {
				bestBySuit[suit] = cr.Tricks
			}
		}
		for suit := 0; suit < 4; suit++ {
			if bestBySuit[suit] < 0 {
				continue
			}
			minRank := cardset.Rank(255)
			for _, cr := range out.Cards {
				if int(cr.Card.Suit) != suit || cr.Tricks != bestBySuit[suit] {
					continue
				}
				if cr.Card.Rank < minRank {
					minRank = cr.Card.Rank
				}
			}
			out.WinningRank[suit] = minRank
			out.WinningRankSet[suit] = true
		}
	}

	return out, nil
}

// classTotal plays c (one equivalence-class representative), measures the
// tricks side goes on to take from c onward inclusive, and undoes the
// move. Solve only counts tricks from the position handed to it forward,
// so if c itself completed a trick for side that trick is credited
// separately by diffing TricksWon across the move.
func classTotal(state *search.SearchState, w *scheduler.Worker, side int, c cardset.Card) int {
	before := state.TricksWon[side]
	if err := state.MakeMove(c); err != nil {
		panic(err)
	}
	won := state.TricksWon[side] - before
	total := won + w.SolveForSide(state, side)
	state.UnmakeMove()
	return total
}
