// Package scheduler pools search workers the way the teacher engine pools
// its Lazy SMP workers: a fixed slice of per-worker state built once, each
// entry holding its own transposition table, reused across requests. Each
// request still allocates a fresh SearchState.
package scheduler

import (
	"github.com/hailam/bridgedds/internal/cardset"
	"github.com/hailam/bridgedds/internal/search"
)

// defaultTTSizeMB is the per-worker transposition table size. Small enough
// that a pool of workers sized to GOMAXPROCS stays within a modest memory
// budget on an ordinary machine.
const defaultTTSizeMB = 16

// Worker holds one goroutine's reusable search state: its own TransTable,
// so no worker ever contends for another's table. It keeps no SearchState;
// every SolveBoard call allocates a new one.
type Worker struct {
	id int
	tt *search.TransTable
}

// NewWorker allocates a Worker with its own TransTable, sized ttSizeMB
// megabytes (defaultTTSizeMB if ttSizeMB <= 0).
func NewWorker(id int, ttSizeMB int) *Worker {
	if ttSizeMB <= 0 {
		ttSizeMB = defaultTTSizeMB
	}
	return &Worker{
		id: id,
		tt: search.NewTransTable(ttSizeMB),
	}
}

// ID returns the worker's index within its pool.
func (w *Worker) ID() int { return w.id }

// SolveBoard runs a full double-dummy search on deal from leader under
// trump, returning the number of tricks leader's side can guarantee. It
// reuses w's TransTable across calls. NewSearch bumps its generation,
// which only lets Store replace entries from earlier boards; Probe does
// not check the generation, so those entries are still found, keyed on
// the full position fingerprint.
func (w *Worker) SolveBoard(deal cardset.Deal, trump cardset.Strain, leader cardset.Direction) int {
	w.tt.NewSearch()
	s := search.NewSearchState(deal, trump, leader)
	return s.Solve(w.tt, leader.Side())
}

// SolveFrom runs a search starting from an already-advanced SearchState
// (used by play analysis to resolve a sub-position reached after a history
// of moves), for the side of the player to move.
func (w *Worker) SolveFrom(s *search.SearchState) int {
	w.tt.NewSearch()
	return s.Solve(w.tt, s.ToPlay().Side())
}

// SolveForSide is SolveFrom generalised to an explicit side, for ranking a
// candidate card from the perspective of whichever side chose to play it
// even after the trick has rotated play to a different hand.
func (w *Worker) SolveForSide(s *search.SearchState, side int) int {
	w.tt.NewSearch()
	return s.Solve(w.tt, side)
}
