package search

import "errors"

// ErrInvalidMove is returned when a requested play is not held by the
// player to move, or violates the follow-suit requirement.
var ErrInvalidMove = errors.New("search: invalid move")

// ErrCapacityExceeded marks an internal engine error — a transposition
// table or stack exhausted its pre-allocated capacity. This is the
// "programming bug" error class: callers cannot recover a single
// request from it, and it aborts the enclosing batch.
var ErrCapacityExceeded = errors.New("search: capacity exceeded")
