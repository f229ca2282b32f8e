//go:build leaktests
// +build leaktests

package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rfgrep/rfgrep/internal/types"
	"go.uber.org/goleak"
)

// TestRun_NoGoroutineLeak verifies the semaphore/WaitGroup fan-out in
// runParallel leaves no goroutines behind once Run returns.
func TestRun_NoGoroutineLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var paths []string
	for i := 0; i < 20; i++ {
		path := filepath.Join(dir, string(rune('a'+i))+".txt")
		if err := os.WriteFile(path, []byte("NEEDLE\n"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		paths = append(paths, path)
	}

	cfg := types.StreamingConfig{Algorithm: types.AlgorithmSimple, CaseSensitive: true}
	_, errs := Run(context.Background(), paths, "NEEDLE", cfg, 4)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
