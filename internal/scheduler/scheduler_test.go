package scheduler

import (
	"context"
	"testing"

	"github.com/hailam/bridgedds/internal/cardset"
)

func mustDeal(t *testing.T, w, n, e, s string) cardset.Deal {
	t.Helper()
	d, err := cardset.ParseDeal(w, n, e, s)
	if err != nil {
		t.Fatalf("ParseDeal: %v", err)
	}
	return d
}

// TestSolveBoardsPreservesRequestOrder is the scheduler-level half of
// testable property 1/2's plumbing: batch results must come back in
// request order regardless of which worker happens to finish first, so a
// deliberately varied (and therefore non-uniformly-slow) batch is fanned
// out across a small pool.
func TestSolveBoardsPreservesRequestOrder(t *testing.T) {
	slam := mustDeal(t,
		"AQJ.432.32.AT876",
		"K32.KQJ.AKQ.Q432",
		"T98.T987.J98765.-",
		"7654.A65.T4.KJ95",
	)
	grand := mustDeal(t,
		"AK.A.AKQJ.KQ8765",
		"QJ5432.32.2.A432",
		"T987.KQJT987..J9",
		"6.654.T9876543.T",
	)

	sc := New(3, 1)
	reqs := make([]BoardRequest, 0, 12)
	for i := 0; i < 6; i++ {
		reqs = append(reqs,
			BoardRequest{Deal: slam, Trump: cardset.NoTrump, Leader: cardset.East},
			BoardRequest{Deal: grand, Trump: cardset.StrainSpades, Leader: cardset.West},
		)
	}

	results, err := sc.SolveBoards(context.Background(), reqs)
	if err != nil {
		t.Fatalf("SolveBoards: %v", err)
	}
	if len(results) != len(reqs) {
		t.Fatalf("got %d results, want %d", len(results), len(reqs))
	}
	for i, req := range reqs {
		if req.Leader == cardset.East && results[i] != 12 {
			t.Errorf("result[%d] (slam leg) = %d, want 12", i, results[i])
		}
	}
	// Every grand-slam leg (West on lead, spades trump) must agree with
	// every other grand-slam leg, since they are all the identical request
	// solved by whichever worker happened to pick it up.
	grandResult := -1
	for i, req := range reqs {
		if req.Leader != cardset.West {
			continue
		}
		if grandResult == -1 {
			grandResult = results[i]
		} else if results[i] != grandResult {
			t.Errorf("result[%d] = %d, want %d (identical request solved elsewhere in the batch)", i, results[i], grandResult)
		}
	}
}

// TestSolveBoardsConcurrentWorkersRace exercises the worker pool under
// -race: every worker owns an independent TransTable, so concurrent
// requests across workers must never touch shared mutable state.
func TestSolveBoardsConcurrentWorkersRace(t *testing.T) {
	deal := mustDeal(t,
		"AQJ.432.32.AT876",
		"K32.KQJ.AKQ.Q432",
		"T98.T987.J98765.-",
		"7654.A65.T4.KJ95",
	)
	sc := New(4, 1)
	reqs := make([]BoardRequest, 40)
	for i := range reqs {
		reqs[i] = BoardRequest{Deal: deal, Trump: cardset.NoTrump, Leader: cardset.East}
	}
	results, err := sc.SolveBoards(context.Background(), reqs)
	if err != nil {
		t.Fatalf("SolveBoards: %v", err)
	}
	for i, r := range results {
		if r != 12 {
			t.Errorf("result[%d] = %d, want 12", i, r)
		}
	}
}

func TestSolveBoardsEmptyBatch(t *testing.T) {
	sc := New(2, 1)
	results, err := sc.SolveBoards(context.Background(), nil)
	if err != nil {
		t.Fatalf("SolveBoards(nil): %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results for an empty batch, want 0", len(results))
	}
}
