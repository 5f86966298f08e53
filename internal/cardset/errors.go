package cardset

import (
	"errors"
	"fmt"
)

// Sentinel errors backing the taxonomy in spec §7. Packages above cardset
// wrap these with fmt.Errorf("%w: ...") rather than inventing new kinds, so
// callers can errors.Is against a single stable set regardless of which
// layer produced the error.
var (
	ErrInvalidDeal = errors.New("invalid deal")
	ErrBadStrain   = errors.New("bad strain")
	ErrBadLeader   = errors.New("bad leader")
)

func badLeaderError(c byte) error {
	return fmt.Errorf("%w: unknown direction %q", ErrBadLeader, c)
}
