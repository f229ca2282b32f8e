// Package search implements the per-file search (C5): dispatching a single
// ingested source (or archive's worth of them) through a matcher, applying
// invert-match and max-matches post-processing, and wrapping the whole
// thing in a per-file timeout that reports zero matches rather than an
// error on expiry.
package search

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/rfgrep/rfgrep/internal/ingest"
	"github.com/rfgrep/rfgrep/internal/matcher"
	"github.com/rfgrep/rfgrep/internal/types"
)

// workerSleepEnv, when set to a parsed integer number of seconds, makes the
// search phase sleep before starting — a deliberate hook so tests can
// exercise the per-file timeout path deterministically without relying on
// real file sizes or slow I/O, mirroring the original implementation's
// RFGREP_WORKER_SLEEP test hook.
const workerSleepEnv = "RFGREP_WORKER_SLEEP"

// File runs pattern over path using cfg, honoring cfg.PerFileTimeout. A
// timed-out file reports zero matches, never an error (spec section 4.5).
func File(ctx context.Context, path string, pattern string, cfg types.StreamingConfig) ([]types.Match, error) {
	m, err := matcher.New(cfg.Algorithm, pattern, cfg.CaseSensitive)
	if err != nil {
		return nil, err
	}

	if cfg.PerFileTimeout <= 0 {
		return searchPath(path, m, cfg)
	}

	type outcome struct {
		matches []types.Match
		err     error
	}

	done := make(chan outcome, 1)
	go func() {
		simulateWorkerSleep()
		matches, err := searchPath(path, m, cfg)
		done <- outcome{matches, err}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, cfg.PerFileTimeout)
	defer cancel()

	select {
	case out := <-done:
		return out.matches, out.err
	case <-timeoutCtx.Done():
		return nil, nil
	}
}

func simulateWorkerSleep() {
	v, ok := os.LookupEnv(workerSleepEnv)
	if !ok {
		return
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return
	}
	time.Sleep(time.Duration(secs) * time.Second)
}

// searchPath resolves path's ingestion strategy and runs the matcher over
// it, fanning out across archive members when applicable.
func searchPath(path string, m matcher.Matcher, cfg types.StreamingConfig) ([]types.Match, error) {
	result, err := ingest.Open(path, sizeOf(path))
	if err != nil {
		return nil, err
	}
	if result.Skipped {
		return nil, nil
	}

	var all []types.Match
	for _, entry := range result.Entries {
		rc, err := entry.Open()
		if err != nil {
			continue
		}
		matches := searchStream(rc, entry.Path, m, cfg)
		rc.Close()
		all = append(all, matches...)
	}

	if result.Source != nil {
		defer result.Source.Close()
		if result.Source.Data != nil {
			all = append(all, searchBuffer(result.Source.Data, result.Source.Path, m, cfg)...)
		} else {
			all = append(all, searchStream(result.Source.Reader, result.Source.Path, m, cfg)...)
		}
	}

	return applyPostProcessing(all, cfg), nil
}

func sizeOf(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// applyPostProcessing truncates to cfg.MaxMatches, the per-file cap applied
// before the orchestrator ever sees the results (resolved open question:
// max-matches is per file, not a global ceiling across the whole run).
func applyPostProcessing(matches []types.Match, cfg types.StreamingConfig) []types.Match {
	if cfg.MaxMatches > 0 && len(matches) > cfg.MaxMatches {
		matches = matches[:cfg.MaxMatches]
	}
	return matches
}
