// Package orchestrator implements the bounded-parallel fan-out (C6): given
// a list of file paths and a concurrency ceiling, run the per-file search
// over each and return a sorted concatenation of all matches. The
// concurrency shape — a buffered channel semaphore plus a WaitGroup and a
// results channel — mirrors the teacher's
// analyzeProjectConcurrent, generalized from "analyze every file" to
// "search every file, honoring a shutdown flag and a per-file timeout".
package orchestrator

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/rfgrep/rfgrep/internal/rfgreperr"
	"github.com/rfgrep/rfgrep/internal/search"
	"github.com/rfgrep/rfgrep/internal/signalctl"
	"github.com/rfgrep/rfgrep/internal/types"
)

// parallelThreshold is the input size above which the orchestrator fans
// out; at or below it, the work runs serially on the calling goroutine
// (spec section 4.6).
const parallelThreshold = 10

// FileError pairs a path with the error its search produced, so the
// orchestrator can report it to the error stream without failing the batch.
type FileError struct {
	Path string
	Err  error
}

// Run searches every path in paths for pattern, bounded to concurrency
// simultaneous per-file searches (0 or negative means min(NumCPU, 8)).
// Cancellation is cooperative: once signalctl reports a shutdown request,
// no new tasks are started, but tasks already running are allowed to
// finish. Results are sorted by (path, line number, column start).
func Run(ctx context.Context, paths []string, pattern string, cfg types.StreamingConfig, concurrency int) ([]types.Match, []FileError) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency()
	}

	if len(paths) <= parallelThreshold {
		return runSerial(ctx, paths, pattern, cfg)
	}
	return runParallel(ctx, paths, pattern, cfg, concurrency)
}

func defaultConcurrency() int {
	n := runtime.NumCPU()
	if n > 8 {
		return 8
	}
	if n < 1 {
		return 1
	}
	return n
}

func runSerial(ctx context.Context, paths []string, pattern string, cfg types.StreamingConfig) ([]types.Match, []FileError) {
	var matches []types.Match
	var errs []FileError

	for _, p := range paths {
		if signalctl.Requested() {
			break
		}
		m, err := search.File(ctx, p, pattern, cfg)
		if err != nil {
			errs = append(errs, FileError{Path: p, Err: rfgreperr.Wrap(rfgreperr.Io, "search failed", err)})
			continue
		}
		matches = append(matches, m...)
	}

	sortMatches(matches)
	return matches, errs
}

type taskResult struct {
	path    string
	matches []types.Match
	err     error
}

func runParallel(ctx context.Context, paths []string, pattern string, cfg types.StreamingConfig, concurrency int) ([]types.Match, []FileError) {
	semaphore := make(chan struct{}, concurrency)
	results := make(chan taskResult, len(paths))
	var wg sync.WaitGroup

	for _, p := range paths {
		if signalctl.Requested() {
			break
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			matches, err := search.File(ctx, path, pattern, cfg)
			results <- taskResult{path: path, matches: matches, err: err}
		}(p)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var matches []types.Match
	var errs []FileError
	for r := range results {
		if r.err != nil {
			errs = append(errs, FileError{Path: r.path, Err: rfgreperr.Wrap(rfgreperr.Io, "search failed", r.err)})
			continue
		}
		matches = append(matches, r.matches...)
	}

	sortMatches(matches)
	return matches, errs
}

func sortMatches(matches []types.Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		return a.ColumnStart < b.ColumnStart
	})
}
