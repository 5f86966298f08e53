// Package bdd implements a reduced ordered binary decision diagram (ROBDD)
// store with complement edges. It is grounded on two references studied for
// this engine: the recursive ite/get_node algorithm of bridgemoose's
// bdd.py, and the index-keyed node vector + unique table shape of the
// BuDDy-style backend in dalzilio/rudd's buddy.go. Neither is imported —
// both are structural models for the kernel built here directly, per the
// design notes calling for a bespoke BDD rather than a wrapped library.
package bdd

import (
	"fmt"
	"math/big"
	"sync"
)

// Handle is a signed reference into a Store. Its sign is the complement
// bit: Handle(-h) denotes the logical negation of whatever Handle(h)
// denotes. True and False are reserved sentinel values; all other handles
// reference a node by absolute value (node ids start at 2).
type Handle int32

const (
	// Invalid is the zero Handle, never produced by a Store.
	Invalid Handle = 0
	// True is the constant-true terminal.
	True Handle = 1
	// False is the constant-false terminal, the complement of True.
	False Handle = -1
)

// Complement returns the logical negation of h.
func Complement(h Handle) Handle {
	if h == True {
		return False
	}
	if h == False {
		return True
	}
	return -h
}

func isComplemented(h Handle) bool { return h < 0 }

// node is a decision node: test Var, branch to Then when true, Else when
// false. Then never itself carries a complement sign — that invariant is
// enforced by Store.Mk before a node is ever allocated.
type node struct {
	Var  int32
	Then Handle
	Else Handle
}

type nodeKey struct {
	Var  int32
	Then Handle
	Else Handle
}

type iteKey struct {
	I, T, E Handle
}

// Store owns one ROBDD variable domain (numVars boolean variables numbered
// 0..numVars-1, tested in increasing order root to leaf) and every node
// built over it. HandSet and DealSet use separate Stores (52 and 104
// variables respectively), since they are different variable domains.
type Store struct {
	mu sync.Mutex

	numVars   int
	nodes     []node // index 0 unused, index 1 reserved for the True terminal
	unique    map[nodeKey]int32
	iteMemo   map[iteKey]Handle
	countMemo map[int32]*big.Int
}

// NewStore creates a Store over numVars boolean variables.
func NewStore(numVars int) *Store {
	s := &Store{
		numVars:   numVars,
		nodes:     make([]node, 2, 1024),
		unique:    make(map[nodeKey]int32, 1024),
		iteMemo:   make(map[iteKey]Handle, 1024),
		countMemo: make(map[int32]*big.Int, 1024),
	}
	s.nodes[1] = node{Var: int32(numVars), Then: True, Else: True}
	return s
}

// NumVars returns the Store's variable count.
func (s *Store) NumVars() int { return s.numVars }

// NodeCount returns the number of distinct decision nodes ever allocated
// (not the size of any single BDD — see Size for that).
func (s *Store) NodeCount() int { return len(s.nodes) - 2 }

func (s *Store) varOf(h Handle) int32 {
	if h == True || h == False {
		return int32(s.numVars)
	}
	id := h
	if id < 0 {
		id = -id
	}
	return s.nodes[id].Var
}

func (s *Store) childThen(h Handle) Handle {
	id := h
	neg := id < 0
	if neg {
		id = -id
	}
	t := s.nodes[id].Then
	if neg {
		return Complement(t)
	}
	return t
}

func (s *Store) childElse(h Handle) Handle {
	id := h
	neg := id < 0
	if neg {
		id = -id
	}
	e := s.nodes[id].Else
	if neg {
		return Complement(e)
	}
	return e
}

// Var returns the Handle for the bare boolean variable v (0-indexed).
func (s *Store) Var(v int) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mkRaw(int32(v), True, False)
}

// Mk builds (or finds) the canonical node testing var, branching to then
// when true and els when false. var must be strictly less than the top
// variable of both then and els; violating that is a programming bug in
// the caller and panics with a BDDError-class message, matching §7's
// "internal invariant violation" class.
func (s *Store) Mk(v int32, then, els Handle) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mk(v, then, els)
}

func (s *Store) mk(v int32, then, els Handle) Handle {
	if then == els {
		return then
	}
	if isComplemented(then) {
		return Complement(s.mkRaw(v, Complement(then), Complement(els)))
	}
	return s.mkRaw(v, then, els)
}

func (s *Store) mkRaw(v int32, then, els Handle) Handle {
	if v >= s.varOf(then) || v >= s.varOf(els) {
		panic(fmt.Sprintf("bdd: BDDError: variable %d must precede children (then=%d, else=%d)", v, s.varOf(then), s.varOf(els)))
	}
	key := nodeKey{Var: v, Then: then, Else: els}
	if id, ok := s.unique[key]; ok {
		return Handle(id)
	}
	id := int32(len(s.nodes))
	s.nodes = append(s.nodes, node{Var: v, Then: then, Else: els})
	s.unique[key] = id
	return Handle(id)
}

// ITE computes if-then-else(i, t, e), the universal BDD combinator that And,
// Or, Xor and Not are all built from.
func (s *Store) ITE(i, t, e Handle) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ite(i, t, e)
}

func (s *Store) ite(i, t, e Handle) Handle {
	if i == True {
		return t
	}
	if i == False {
		return e
	}
	if i == t {
		t = True
	} else if i == Complement(t) {
		t = False
	}
	if i == e {
		e = False
	} else if i == Complement(e) {
		e = True
	}
	if t == e {
		return t
	}
	if t == True && e == False {
		return i
	}
	if t == False && e == True {
		return Complement(i)
	}

	key1 := iteKey{i, t, e}
	key2 := iteKey{i, Complement(t), Complement(e)}
	if v, ok := s.iteMemo[key1]; ok {
		return v
	}
	if v, ok := s.iteMemo[key2]; ok {
		return Complement(v)
	}

	minVar := s.varOf(i)
	if v := s.varOf(t); v < minVar {
		minVar = v
	}
	if v := s.varOf(e); v < minVar {
		minVar = v
	}

	iThen, iElse := i, i
	if s.varOf(i) == minVar {
		iThen, iElse = s.childThen(i), s.childElse(i)
	}
	tThen, tElse := t, t
	if s.varOf(t) == minVar {
		tThen, tElse = s.childThen(t), s.childElse(t)
	}
	eThen, eElse := e, e
	if s.varOf(e) == minVar {
		eThen, eElse = s.childThen(e), s.childElse(e)
	}

	then := s.ite(iThen, tThen, eThen)
	els := s.ite(iElse, tElse, eElse)
	out := s.mk(minVar, then, els)

	s.iteMemo[key1] = out
	return out
}

// And returns the conjunction of a and b.
func (s *Store) And(a, b Handle) Handle { return s.ITE(a, b, False) }

// Or returns the disjunction of a and b.
func (s *Store) Or(a, b Handle) Handle { return s.ITE(a, True, b) }

// Xor returns the exclusive-or of a and b.
func (s *Store) Xor(a, b Handle) Handle { return s.ITE(a, Complement(b), b) }

// Not returns the complement of a. It never allocates.
func (s *Store) Not(a Handle) Handle { return Complement(a) }

// AndNot returns a & !b.
func (s *Store) AndNot(a, b Handle) Handle { return s.ITE(a, Complement(b), False) }

// VarOf returns the variable tested at h's top node, or NumVars() if h is a
// terminal (True or False) — used by callers that need to walk a BDD's
// structure directly, such as lifting a predicate from one Store's
// variable domain into another's.
func (s *Store) VarOf(h Handle) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.varOf(h)
}

// ChildThen returns h's then-child (the branch taken when VarOf(h) is
// true).
func (s *Store) ChildThen(h Handle) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.childThen(h)
}

// ChildElse returns h's else-child (the branch taken when VarOf(h) is
// false).
func (s *Store) ChildElse(h Handle) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.childElse(h)
}

// Eval walks h along the boolean assignment bits (indexed by variable) and
// reports whether the assignment satisfies h.
func (s *Store) Eval(h Handle, bits []bool) bool {
	for {
		if h == True {
			return true
		}
		if h == False {
			return false
		}
		v := s.varOf(h)
		if bits[v] {
			h = s.childThen(h)
		} else {
			h = s.childElse(h)
		}
	}
}
