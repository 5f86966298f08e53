package solver

import (
	"fmt"

	"github.com/hailam/bridgedds/internal/bdd"
	"github.com/hailam/bridgedds/internal/cardset"
	"github.com/hailam/bridgedds/internal/search"
)

// Re-exported sentinels so callers can errors.Is against one stable set
// without importing the internal packages that actually raise them —
// the same flattened taxonomy the spec's error design calls for.
var (
	ErrInvalidDeal      = cardset.ErrInvalidDeal
	ErrBadStrain        = cardset.ErrBadStrain
	ErrBadLeader        = cardset.ErrBadLeader
	ErrInvalidMove      = search.ErrInvalidMove
	ErrCapacityExceeded = search.ErrCapacityExceeded
	ErrBDD              = bdd.ErrBDD
)

// BatchError reports that one slot of a batch request failed validation.
// Per §7, a validation failure aborts only its own slot — the rest of the
// batch still returns results — whereas an internal engine error
// (CapacityExceeded, BDDError) is returned directly and aborts the batch.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("request %d: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
