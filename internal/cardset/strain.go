package cardset

import "fmt"

// Strain is the trump suit of a board, or notrump.
type Strain uint8

const (
	StrainClubs Strain = iota
	StrainDiamonds
	StrainHearts
	StrainSpades
	NoTrump
)

func (s Strain) String() string {
	switch s {
	case StrainClubs:
		return "C"
	case StrainDiamonds:
		return "D"
	case StrainHearts:
		return "H"
	case StrainSpades:
		return "S"
	case NoTrump:
		return "N"
	default:
		return "?"
	}
}

// IsTrump reports whether s names an actual trump suit (not notrump).
func (s Strain) IsTrump() bool { return s != NoTrump }

// Suit returns the trump suit for s. Only valid when s.IsTrump().
func (s Strain) Suit() Suit { return Suit(s) }

// ParseStrain parses a single-character strain code (case-insensitive).
func ParseStrain(c byte) (Strain, error) {
	switch c {
	case 'C', 'c':
		return StrainClubs, nil
	case 'D', 'd':
		return StrainDiamonds, nil
	case 'H', 'h':
		return StrainHearts, nil
	case 'S', 's':
		return StrainSpades, nil
	case 'N', 'n':
		return NoTrump, nil
	default:
		return 0, fmt.Errorf("%w: unknown strain %q", ErrBadStrain, c)
	}
}
