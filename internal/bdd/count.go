package bdd

import (
	"fmt"
	"math/big"
)

// subtreeCount returns the number of satisfying assignments to variables
// [varOf(h), numVars) given that h is encountered exactly at its own top
// variable (i.e. no leading "don't care" variables above it). This is the
// quantity memoized per node; Count and NthModel derive the full
// domain-wide count from it by accounting for skipped variables above and
// below each node, since a reduced BDD may not test every variable on a
// given root-to-leaf path. Counts use math/big since a 104-variable deal
// domain's satisfying-assignment counts routinely exceed 2^64 (the number
// of ways to deal four 13-card hands alone is about 5.4*10^28).
func (s *Store) subtreeCount(h Handle) *big.Int {
	if h == True {
		return big.NewInt(1)
	}
	if h == False {
		return big.NewInt(0)
	}
	id := h
	neg := id < 0
	if neg {
		id = -id
	}
	if c, ok := s.countMemo[int32(id)]; ok {
		if neg {
			return new(big.Int).Sub(s.totalAtOwnLevel(id), c)
		}
		return c
	}
	n := s.nodes[id]
	thenCount := s.levelCount(n.Then, n.Var+1)
	elseCount := s.levelCount(n.Else, n.Var+1)
	c := new(big.Int).Add(thenCount, elseCount)
	s.countMemo[int32(id)] = c
	if neg {
		return new(big.Int).Sub(s.totalAtOwnLevel(id), c)
	}
	return c
}

func (s *Store) totalAtOwnLevel(id Handle) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(s.numVars-int(s.nodes[id].Var)))
}

// levelCount returns the number of satisfying assignments to variables
// [level, numVars) for handle h, where level may be strictly less than
// varOf(h) — the gap contributes a factor of 2 per skipped variable.
func (s *Store) levelCount(h Handle, level int32) *big.Int {
	v := s.varOf(h)
	gap := uint(v - level)
	return new(big.Int).Lsh(s.subtreeCount(h), gap)
}

// Count returns the number of boolean assignments over the Store's full
// variable domain that satisfy h.
func (s *Store) Count(h Handle) *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked(h)
}

func (s *Store) countLocked(h Handle) *big.Int {
	if h == True {
		return new(big.Int).Lsh(big.NewInt(1), uint(s.numVars))
	}
	if h == False {
		return big.NewInt(0)
	}
	v := s.varOf(h)
	return new(big.Int).Lsh(s.subtreeCount(h), uint(v))
}

// NthModel returns the k-th (0-indexed) satisfying assignment of h in
// lexicographic-by-variable order, as a slice of numVars booleans. It is
// the basis for uniform sampling: callers draw k uniformly in
// [0, Count(h)) and pass it here. k is not mutated.
func (s *Store) NthModel(h Handle, k *big.Int) ([]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.countLocked(h)
	if k.Sign() < 0 || k.Cmp(total) >= 0 {
		return nil, fmt.Errorf("%w: model index %s out of range [0,%s)", ErrBDD, k, total)
	}
	remaining := new(big.Int).Set(k)
	out := make([]bool, s.numVars)
	cur := h
	for level := 0; level < s.numVars; level++ {
		elseBranch, thenBranch := cur, cur
		if s.varOf(cur) == int32(level) {
			elseBranch = s.childElse(cur)
			thenBranch = s.childThen(cur)
		}
		elseCount := s.levelCount(elseBranch, int32(level+1))
		if remaining.Cmp(elseCount) < 0 {
			out[level] = false
			cur = elseBranch
		} else {
			out[level] = true
			remaining.Sub(remaining, elseCount)
			cur = thenBranch
		}
	}
	return out, nil
}

// Size returns the number of distinct nodes reachable from h (ignoring
// complement sign, which shares structure), via a seen-set walk — a
// diagnostic, not a hot-path operation.
func (s *Store) Size(h Handle) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int32]bool)
	var walk func(Handle) int
	walk = func(x Handle) int {
		if x == True || x == False {
			return 0
		}
		id := x
		if id < 0 {
			id = -id
		}
		if seen[int32(id)] {
			return 0
		}
		seen[int32(id)] = true
		n := s.nodes[id]
		return 1 + walk(n.Then) + walk(n.Else)
	}
	return walk(h)
}
