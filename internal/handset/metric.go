package handset

import (
	"github.com/hailam/bridgedds/internal/bdd"
)

// Metric is an integer-valued function of a hand (high-card points, suit
// length, quick tricks, ...), represented as a map from each attainable
// score to the BDD predicate of hands achieving it. Comparisons turn a
// Metric into a HandSet; Add/Sub/Scale combine metrics via the convolution
// bridgemoose's make_arith_func performs with plain Python dicts, done here
// with BDD set algebra instead of enumerating hands.
type Metric struct {
	data *metricData
}

type metricData struct {
	eng     *Engine
	values  map[int]bdd.Handle
	leCache map[int]bdd.Handle
}

// NewMetric wraps a precomputed score->predicate map as a Metric.
func (e *Engine) NewMetric(values map[int]bdd.Handle) Metric {
	return Metric{data: &metricData{eng: e, values: values, leCache: make(map[int]bdd.Handle)}}
}

// Eq returns the HandSet of hands whose metric value equals n.
func (m Metric) Eq(n int) HandSet {
	h, ok := m.data.values[n]
	if !ok {
		h = bdd.False
	}
	return m.data.eng.NewHandSet(h)
}

// Le returns the HandSet of hands whose metric value is <= n, memoized
// per distinct n queried on this Metric.
func (m Metric) Le(n int) HandSet {
	if h, ok := m.data.leCache[n]; ok {
		return m.data.eng.NewHandSet(h)
	}
	store := m.data.eng.HandStore
	acc := bdd.False
	for score, h := range m.data.values {
		if score <= n {
			acc = store.Or(acc, h)
		}
	}
	m.data.leCache[n] = acc
	return m.data.eng.NewHandSet(acc)
}

// Lt returns the HandSet of hands whose metric value is < n.
func (m Metric) Lt(n int) HandSet { return m.Le(n - 1) }

// Ge returns the HandSet of hands whose metric value is >= n.
func (m Metric) Ge(n int) HandSet { return m.Lt(n).Not() }

// Gt returns the HandSet of hands whose metric value is > n.
func (m Metric) Gt(n int) HandSet { return m.Le(n).Not() }

// Between returns the HandSet of hands whose metric value is in [lo,hi].
func (m Metric) Between(lo, hi int) HandSet { return m.Ge(lo).And(m.Le(hi)) }

// Add returns the convolution of m and other: the metric whose value on a
// hand is m's value plus other's value, computed by ANDing every pair of
// buckets and ORing together those landing on the same sum.
func (m Metric) Add(other Metric) Metric {
	store := m.data.eng.HandStore
	next := make(map[int]bdd.Handle)
	for s1, h1 := range m.data.values {
		for s2, h2 := range other.data.values {
			key := s1 + s2
			and := store.And(h1, h2)
			if and == bdd.False {
				continue
			}
			if existing, ok := next[key]; ok {
				next[key] = store.Or(existing, and)
			} else {
				next[key] = and
			}
		}
	}
	return m.data.eng.NewMetric(next)
}

// Negate returns the metric whose value is the negation of m's.
func (m Metric) Negate() Metric {
	next := make(map[int]bdd.Handle, len(m.data.values))
	for s, h := range m.data.values {
		next[-s] = h
	}
	return m.data.eng.NewMetric(next)
}

// Sub returns m's value minus other's value.
func (m Metric) Sub(other Metric) Metric { return m.Add(other.Negate()) }

// Scale returns the metric whose value is m's value multiplied by k.
func (m Metric) Scale(k int) Metric {
	store := m.data.eng.HandStore
	next := make(map[int]bdd.Handle, len(m.data.values))
	if k == 0 {
		acc := bdd.False
		for _, h := range m.data.values {
			acc = store.Or(acc, h)
		}
		next[0] = acc
		return m.data.eng.NewMetric(next)
	}
	for s, h := range m.data.values {
		next[s*k] = h
	}
	return m.data.eng.NewMetric(next)
}

// Values returns the underlying score->predicate map. Callers should treat
// it as read-only.
func (m Metric) Values() map[int]bdd.Handle { return m.data.values }
