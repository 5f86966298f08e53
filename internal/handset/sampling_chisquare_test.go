package handset

import (
	"math/big"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/hailam/bridgedds/internal/cardset"
)

// ratioToFloat64 converts the exact rational count/total to a float64,
// since gonum's stat.ChiSquare wants plain float64 expectations rather
// than the *big.Int counts the BDD engine naturally produces.
func ratioToFloat64(count, total *big.Int) float64 {
	f := new(big.Float).Quo(new(big.Float).SetInt(count), new(big.Float).SetInt(total))
	v, _ := f.Float64()
	return v
}

// TestSampleSpadeLengthIsUniform draws many hands from Any() and checks
// that spade-length lands in three coarse buckets (short/medium/long) at
// the rates the BDD model count predicts, via a chi-square goodness-of-fit
// test — the same kind of check bridgemoose's own sampling tests use to
// catch a biased or off-by-one NthModel walk, since Sample's uniformity
// can't be eyeballed from a handful of draws.
func TestSampleSpadeLengthIsUniform(t *testing.T) {
	eng := NewEngine()
	universe := eng.Any()
	total := universe.Count()

	type bucket struct {
		lo, hi int
		hs     HandSet
	}
	buckets := []bucket{
		{0, 2, eng.SuitLength(cardset.Spades).Between(0, 2)},
		{3, 4, eng.SuitLength(cardset.Spades).Between(3, 4)},
		{5, 13, eng.SuitLength(cardset.Spades).Between(5, 13)},
	}

	expected := make([]float64, len(buckets))
	for i, b := range buckets {
		count := universe.And(b.hs).Count()
		if count.Sign() == 0 {
			t.Fatalf("bucket [%d,%d] has zero model count", b.lo, b.hi)
		}
		expected[i] = ratioToFloat64(count, total)
	}

	const draws = 4000
	rng := newSeededRNG(20260731)
	observed := make([]float64, len(buckets))
	for i := 0; i < draws; i++ {
		hand, err := universe.Sample(rng)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		n := hand.Suit(cardset.Spades).Len()
		switch {
		case n <= 2:
			observed[0]++
		case n <= 4:
			observed[1]++
		default:
			observed[2]++
		}
	}

	expectedCounts := make([]float64, len(buckets))
	for i, p := range expected {
		expectedCounts[i] = p * draws
	}

	chi2 := stat.ChiSquare(observed, expectedCounts)
	// 3 buckets, 2 degrees of freedom: the chi-square critical value at
	// alpha=0.0001 is ~18.4, so 60 is only crossed by a sampler that is
	// badly, not marginally, non-uniform.
	const maxChi2 = 60.0
	if chi2 > maxChi2 {
		t.Errorf("chi-square statistic %.2f exceeds %.2f: observed=%v expectedCounts=%v",
			chi2, maxChi2, observed, expectedCounts)
	}
}
