package search

import "sync/atomic"

// TTBound is the kind of trick-count bound a transposition table entry
// stores for "can declaring side make at least T of the tricks remaining
// from here" — mirrors the teacher's TTFlag enum, specialised from
// score bounds to trick-count bounds.
type TTBound uint8

const (
	// TTExact is reserved for an entry whose lower and upper bound have
	// converged to the same value; canAchieve never proves both halves of
	// a position in one visit, so nothing stores this today. Probe still
	// handles it so a future caller that does narrow lo==hi need not touch
	// the lookup side of the table.
	TTExact TTBound = iota
	TTLowerBound
	TTUpperBound
)

// ttEntry is one transposition table slot.
type ttEntry struct {
	key   uint32 // upper bits of the fingerprint hash, for collision verification
	lo    int8   // proven lower bound on tricks remaining for declaring side
	hi    int8   // proven upper bound
	depth int8   // tricks remaining when this entry was stored
	bound TTBound
	age   uint8
}

// TransTable is a worker-local, open-addressed transposition table keyed
// by PositionFingerprint.Hash, following the teacher's fixed power-of-two
// array with a depth-preferred replacement policy: on collision, prefer
// the entry closer to the root (more tricks remaining), since its
// subtree represents more search work to recompute.
type TransTable struct {
	entries []ttEntry
	mask    uint64
	age     uint8

	probes uint64
	hits   uint64

	// abort is a per-batch soft-abort flag, set by a scheduler when a
	// batch is cancelled. AlphaBeta polls it at the same granularity as
	// TT probes, since every search node probes the table anyway.
	abort *atomic.Bool
}

// SetAbortFlag installs f as the table's soft-abort flag; pass nil to
// clear it. A Worker calls this once per batch so AlphaBeta can unwind
// promptly without threading a cancellation argument through every call.
func (tt *TransTable) SetAbortFlag(f *atomic.Bool) { tt.abort = f }

// Aborted reports whether the installed abort flag, if any, has been set.
func (tt *TransTable) Aborted() bool {
	return tt.abort != nil && tt.abort.Load()
}

// NewTransTable allocates a TransTable sized for roughly sizeMB megabytes
// (rounded down to a power-of-two entry count), the same sizing contract
// as the teacher's NewTranspositionTable(sizeMB int).
func NewTransTable(sizeMB int) *TransTable {
	const entrySize = 16
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	numEntries = roundDownToPowerOf2(numEntries)
	if numEntries == 0 {
		numEntries = 1
	}
	return &TransTable{
		entries: make([]ttEntry, numEntries),
		mask:    numEntries - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up fp's entry. ok is false on a miss or a hash collision
// against a different position.
func (tt *TransTable) Probe(fp PositionFingerprint) (lo, hi int, bound TTBound, ok bool) {
	tt.probes++
	h := fp.Hash()
	e := tt.entries[h&tt.mask]
	if e.key != uint32(h>>32) || e.depth == 0 {
		return 0, 0, 0, false
	}
	tt.hits++
	return int(e.lo), int(e.hi), e.bound, true
}

// Store records a proven bound for fp. Replacement is depth-preferred:
// an entry from an older search generation, or one with equal-or-shallower
// depth, is always overwritten; a deeper entry from the current
// generation is kept.
func (tt *TransTable) Store(fp PositionFingerprint, lo, hi, depth int, bound TTBound) {
	h := fp.Hash()
	e := &tt.entries[h&tt.mask]
	if e.age != tt.age || depth >= int(e.depth) {
		e.key = uint32(h >> 32)
		e.lo = int8(lo)
		e.hi = int8(hi)
		e.depth = int8(depth)
		e.bound = bound
		e.age = tt.age
	}
}

// NewSearch bumps the table's generation counter, the same role the
// teacher's Age field plays across successive top-level searches sharing
// one worker.
func (tt *TransTable) NewSearch() { tt.age++ }

// Clear empties the table and resets its statistics.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
	tt.age = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille of the table occupied by the current
// generation, sampled over the first 1000 slots.
func (tt *TransTable) HashFull() int {
	sampleSize := 1000
	if uint64(sampleSize) > uint64(len(tt.entries)) {
		sampleSize = len(tt.entries)
	}
	used := 0
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].depth > 0 && tt.entries[i].age == tt.age {
			used++
		}
	}
	if sampleSize == 0 {
		return 0
	}
	return (used * 1000) / sampleSize
}

// HitRate returns the probe hit rate as a percentage.
func (tt *TransTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}
