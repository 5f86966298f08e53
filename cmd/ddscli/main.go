// Command ddscli is a minimal batch-request CLI over the solver package:
// read a JSON array of board requests, solve them, write a JSON array of
// results. It exists to demonstrate the public API end to end, the same
// role cmd/chessplay-uci plays for the engine package.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hailam/bridgedds/internal/cardset"
	"github.com/hailam/bridgedds/solver"
)

var (
	inPath     = flag.String("in", "-", "input file of JSON board requests, '-' for stdin")
	outPath    = flag.String("out", "-", "output file for JSON results, '-' for stdout")
	numWorkers = flag.Int("workers", 0, "worker pool size (0 = GOMAXPROCS)")
	ttSizeMB   = flag.Int("tt-mb", 16, "per-worker transposition table size in MB")
)

// boardRequestJSON is the wire shape for one request: four hand strings in
// spec §6's suit order plus single-character strain and leader codes.
type boardRequestJSON struct {
	West   string `json:"west"`
	North  string `json:"north"`
	East   string `json:"east"`
	South  string `json:"south"`
	Strain string `json:"strain"`
	Leader string `json:"leader"`
}

type boardResultJSON struct {
	Tricks int    `json:"tricks"`
	Error  string `json:"error,omitempty"`
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in, err := openInput(*inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	var raw []boardRequestJSON
	if err := json.NewDecoder(in).Decode(&raw); err != nil {
		return fmt.Errorf("decode requests: %w", err)
	}

	reqs := make([]solver.BoardRequest, len(raw))
	parseErrs := make([]error, len(raw))
	for i, r := range raw {
		req, err := parseBoardRequest(r)
		if err != nil {
			parseErrs[i] = err
			continue
		}
		reqs[i] = req
	}

	s := solver.New(*numWorkers, *ttSizeMB)
	tricks, batchErrs, err := s.SolveManyBoards(context.Background(), reqs)
	if err != nil {
		return fmt.Errorf("solve batch: %w", err)
	}

	results := make([]boardResultJSON, len(raw))
	for i := range raw {
		if parseErrs[i] != nil {
			results[i] = boardResultJSON{Error: parseErrs[i].Error()}
			continue
		}
		if batchErrs[i] != nil {
			results[i] = boardResultJSON{Error: batchErrs[i].Error()}
			continue
		}
		results[i] = boardResultJSON{Tricks: tricks[i]}
	}

	out, err := openOutput(*outPath)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func parseBoardRequest(r boardRequestJSON) (solver.BoardRequest, error) {
	deal, err := cardset.ParseDeal(r.West, r.North, r.East, r.South)
	if err != nil {
		return solver.BoardRequest{}, err
	}
	if len(r.Strain) != 1 {
		return solver.BoardRequest{}, fmt.Errorf("%w: strain must be one character", cardset.ErrBadStrain)
	}
	strain, err := cardset.ParseStrain(r.Strain[0])
	if err != nil {
		return solver.BoardRequest{}, err
	}
	if len(r.Leader) != 1 {
		return solver.BoardRequest{}, fmt.Errorf("%w: leader must be one character", cardset.ErrBadLeader)
	}
	leader, err := cardset.ParseDirection(r.Leader[0])
	if err != nil {
		return solver.BoardRequest{}, err
	}
	return solver.BoardRequest{Deal: deal, Strain: strain, Leader: leader}, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
