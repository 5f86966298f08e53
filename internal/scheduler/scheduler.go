package scheduler

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/bridgedds/internal/cardset"
)

// BoardRequest is one (deal, trump, leader) query to solve.
type BoardRequest struct {
	Deal   cardset.Deal
	Trump  cardset.Strain
	Leader cardset.Direction
}

// Scheduler is a fixed pool of Workers, built once and reused across
// batches — the same shape as the teacher's NumWorkers-sized []*Worker,
// generalised from Lazy SMP (every worker searching the same position) to
// work partitioning (every worker searching a disjoint slice of requests).
type Scheduler struct {
	workers []*Worker
}

// New builds a Scheduler with numWorkers Workers, each owning its own
// TransTable sized ttSizeMB megabytes. numWorkers <= 0 defaults to
// runtime.GOMAXPROCS(0), the same default the teacher engine uses for
// NumWorkers.
func New(numWorkers, ttSizeMB int) *Scheduler {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	workers := make([]*Worker, numWorkers)
	for i := range workers {
		workers[i] = NewWorker(i, ttSizeMB)
	}
	return &Scheduler{workers: workers}
}

// NumWorkers returns the size of the pool.
func (sc *Scheduler) NumWorkers() int { return len(sc.workers) }

// Worker returns the i'th worker in the pool (i modulo NumWorkers),
// for callers that need direct access to a single worker's reusable
// state — play analysis walks one history per worker rather than
// submitting independent board requests.
func (sc *Scheduler) Worker(i int) *Worker {
	return sc.workers[i%len(sc.workers)]
}

// SolveBoards solves every request in reqs and returns results in the same
// order as reqs — result order always equals request order, regardless of
// which worker finished first. Requests are assigned to workers
// round-robin and fanned out with an errgroup.Group. Each worker checks
// ctx before starting a request; the first worker to see it cancelled sets
// the batch's soft-abort flag, so searches still running on other workers
// unwind at their next TT probe. A search already running when ctx is
// cancelled is not stopped until some worker reaches that check.
func (sc *Scheduler) SolveBoards(ctx context.Context, reqs []BoardRequest) ([]int, error) {
	results := make([]int, len(reqs))
	if len(reqs) == 0 {
		return results, nil
	}

	var abort atomic.Bool
	for _, w := range sc.workers {
		w.tt.SetAbortFlag(&abort)
	}
	defer func() {
		for _, w := range sc.workers {
			w.tt.SetAbortFlag(nil)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range sc.workers {
		i, w := i, w
		g.Go(func() error {
			for idx := i; idx < len(reqs); idx += len(sc.workers) {
				select {
				case <-gctx.Done():
					abort.Store(true)
					return gctx.Err()
				default:
				}
				req := reqs[idx]
				results[idx] = w.SolveBoard(req.Deal, req.Trump, req.Leader)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
