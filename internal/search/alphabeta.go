package search

import "github.com/hailam/bridgedds/internal/cardset"

// Solve returns the exact number of additional tricks side (0 =
// West/East, 1 = North/South) can guarantee from s onward, assuming
// perfect play by both sides. It iteratively deepens over a target trick
// count, binary-searched in [SideQuickTricks(side), SideLaterTricks(side)]
// rather than [0,13] directly — those two bounds already narrow the
// search window before the first probe.
func (s *SearchState) Solve(tt *TransTable, side int) int {
	lo := s.SideQuickTricks(side)
	hi := s.SideLaterTricks(side)
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if s.canAchieve(tt, side, mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// canAchieve answers "can side take at least target of the tricks not yet
// played from s onward?" via partial-tricks alpha-beta: a TT probe or the
// cheap quick-tricks/later-tricks bounds may resolve it immediately;
// otherwise the mover's equivalence classes are tried in turn, combined
// by OR when the mover is on side (side controls the choice) or AND when
// the mover is on the opposing side (the opponent controls it and will
// pick whichever move defeats side's target).
func (s *SearchState) canAchieve(tt *TransTable, side, target int) bool {
	remaining := s.TricksRemaining()
	if target <= 0 {
		return true
	}
	if target > remaining {
		return false
	}

	lo := s.SideQuickTricks(side)
	if target <= lo {
		return true
	}
	hi := remaining - s.SideQuickTricks(1-side)
	if target > hi {
		return false
	}

	if tt.Aborted() {
		// An aborted search must not be mistaken for a proved result: fail
		// toward "not yet achieved" so the caller's answer is a lower
		// bound it can discard, never a false positive.
		return false
	}

	fp := s.Fingerprint(side)
	if ttLo, ttHi, bound, ok := tt.Probe(fp); ok {
		switch bound {
		case TTExact, TTLowerBound:
			if target <= ttLo {
				return true
			}
		}
		if bound == TTExact || bound == TTUpperBound {
			if target > ttHi {
				return false
			}
		}
	}

	mover := s.ToPlay()
	moverOnSide := mover.Side() == side
	classes := s.EquivalenceClasses()

	var result bool
	if moverOnSide {
		result = false
		for _, class := range classes {
			if s.tryMove(tt, side, target, class.Representative) {
				result = true
				break
			}
		}
	} else {
		result = true
		for _, class := range classes {
			if !s.tryMove(tt, side, target, class.Representative) {
				result = false
				break
			}
		}
	}

	if result {
		tt.Store(fp, target, 13, remaining, TTLowerBound)
	} else {
		tt.Store(fp, 0, target-1, remaining, TTUpperBound)
	}
	return result
}

// tryMove plays c, adjusts target for a trick won by side in the process,
// recurses, and undoes the move.
func (s *SearchState) tryMove(tt *TransTable, side, target int, c cardset.Card) bool {
	if err := s.MakeMove(c); err != nil {
		// EquivalenceClasses only ever proposes legal cards; a failure
		// here means the move generator and MakeMove have drifted out of
		// sync, an internal invariant violation rather than bad input.
		panic(err)
	}
	childTarget := target
	if u := s.undo[len(s.undo)-1]; u.wonTrick && u.winnerSide == side {
		childTarget--
	}
	ok := s.canAchieve(tt, side, childTarget)
	s.UnmakeMove()
	return ok
}
