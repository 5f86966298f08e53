package bdd

import "errors"

// ErrBDD is the sentinel for reachable-at-runtime BDD failures (sampling
// index out of range). Misordered Mk calls are a programming bug instead
// and panic rather than returning this error — see Store.mkRaw.
var ErrBDD = errors.New("bdd error")
