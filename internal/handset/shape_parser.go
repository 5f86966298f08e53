package handset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hailam/bridgedds/internal/bdd"
)

// ParseShapeSpec parses a shape specification such as "4432 + any 4333 -
// 3xxx" into the HandSet of hands matching it. Patterns are four
// characters long, each a digit 0-9 (an exact suit length) or 'x' (any
// length, constrained only by the other suits and the 13-card total),
// read in spades-hearts-diamonds-clubs order as bridge shape notation
// conventionally prints it. A bare pattern constrains the suits in that
// exact order; an "any" prefix instead matches every arrangement of the
// pattern's suit lengths across the four suits (wildcards are not
// supported together with "any"). Terms combine left to right: "+" adds
// matching hands to the result, "-" removes them. This is the same
// incremental union/difference grammar bridgemoose's ShapeMaker builds
// from its own regex-driven term list, reworked as a small hand-rolled
// tokenizer over whitespace-separated terms.
func (e *Engine) ParseShapeSpec(spec string) (HandSet, error) {
	tokens := strings.Fields(spec)
	result := e.None()
	sign := 1
	pendingAny := false
	haveFirst := false

	for _, tok := range tokens {
		switch strings.ToLower(tok) {
		case "+":
			sign = 1
			continue
		case "-":
			sign = -1
			continue
		case "any":
			pendingAny = true
			continue
		}

		digits, err := parseShapeToken(tok)
		if err != nil {
			return HandSet{}, err
		}
		if pendingAny {
			for _, d := range digits {
				if d < 0 {
					return HandSet{}, fmt.Errorf("handset: shape spec %q: \"any\" cannot combine with a wildcard pattern", spec)
				}
			}
		}
		term := e.shapeSetForDigits(digits, pendingAny)
		pendingAny = false

		if !haveFirst {
			if sign < 0 {
				return HandSet{}, fmt.Errorf("handset: shape spec %q: cannot begin with \"-\"", spec)
			}
			result = term
			haveFirst = true
			continue
		}
		if sign > 0 {
			result = result.Or(term)
		} else {
			result = result.And(term.Not())
		}
	}

	if !haveFirst {
		return HandSet{}, fmt.Errorf("handset: shape spec %q: no patterns found", spec)
	}
	return result, nil
}

// parseShapeToken parses one 4-character pattern into [spades, hearts,
// diamonds, clubs] lengths, with -1 marking a wildcard position.
func parseShapeToken(tok string) ([4]int, error) {
	var out [4]int
	if len(tok) != 4 {
		return out, fmt.Errorf("handset: shape pattern %q must be exactly 4 characters", tok)
	}
	for i := 0; i < 4; i++ {
		c := tok[i]
		switch {
		case c == 'x' || c == 'X':
			out[i] = -1
		case c >= '0' && c <= '9':
			out[i] = int(c - '0')
		default:
			return out, fmt.Errorf("handset: shape pattern %q has invalid character %q", tok, c)
		}
	}
	return out, nil
}

// shapeSetForDigits returns the HandSet matching a parsed [S,H,D,C]
// pattern, scanning the engine's cached exact-shape predicates for those
// whose lengths satisfy the pattern (exactly, in display order, or as any
// permutation of the same multiset when anyPermutation is set).
func (e *Engine) shapeSetForDigits(digits [4]int, anyPermutation bool) HandSet {
	store := e.HandStore
	acc := bdd.False
	for lens, h := range e.shapeJointBDDs() {
		// lens is internal [Clubs,Diamonds,Hearts,Spades] order; convert to
		// the pattern's display [Spades,Hearts,Diamonds,Clubs] order.
		display := [4]int{lens[3], lens[2], lens[1], lens[0]}
		var match bool
		if anyPermutation {
			match = isPermutationMatch(digits, display)
		} else {
			match = isExactMatch(digits, display)
		}
		if match {
			acc = store.Or(acc, h)
		}
	}
	return e.NewHandSet(acc)
}

func isExactMatch(digits, display [4]int) bool {
	for i, d := range digits {
		if d >= 0 && display[i] != d {
			return false
		}
	}
	return true
}

func isPermutationMatch(digits, display [4]int) bool {
	want := append([]int(nil), digits[:]...)
	got := append([]int(nil), display[:]...)
	sort.Ints(want)
	sort.Ints(got)
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
