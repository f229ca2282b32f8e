package search

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rfgrep/rfgrep/internal/matcher"
	"github.com/rfgrep/rfgrep/internal/types"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T) (matcher.Matcher, error) {
	t.Helper()
	return matcher.New(types.AlgorithmSimple, "NEEDLE", true)
}

func contentsOf(lines []types.ContextLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Content
	}
	return out
}

func defaultCfg() types.StreamingConfig {
	return types.StreamingConfig{
		Algorithm:     types.AlgorithmSimple,
		ContextLines:  2,
		CaseSensitive: true,
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFile_StreamingFindsMatch(t *testing.T) {
	path := writeTemp(t, "one\ntwo\nNEEDLE here\nfour\nfive\n")
	matches, err := File(context.Background(), path, "NEEDLE", defaultCfg())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, 3, matches[0].LineNumber)
	require.Equal(t, "NEEDLE here", matches[0].Line)
}

func TestFile_StreamingContextAfterNotRescanned(t *testing.T) {
	// context-after lines are pulled directly from the reader and never
	// checked for their own matches — a second NEEDLE in the immediate
	// context-after window must not produce a second match record.
	path := writeTemp(t, "NEEDLE one\nNEEDLE two\nNEEDLE three\nfour\n")
	matches, err := File(context.Background(), path, "NEEDLE", defaultCfg())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, 1, matches[0].LineNumber)
	require.Len(t, matches[0].ContextAfter, 2)
	require.Equal(t, "NEEDLE two", matches[0].ContextAfter[0].Content)
	require.Equal(t, "NEEDLE three", matches[0].ContextAfter[1].Content)
}

func TestFile_StreamingInvertMatch(t *testing.T) {
	path := writeTemp(t, "keep this\nNEEDLE skip\nkeep that\n")
	cfg := defaultCfg()
	cfg.InvertMatch = true
	matches, err := File(context.Background(), path, "NEEDLE", cfg)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		require.Equal(t, 0, m.ColumnStart)
		require.Equal(t, len(m.Line), m.ColumnEnd)
	}
}

func TestFile_MaxMatchesTruncatesPerFile(t *testing.T) {
	path := writeTemp(t, "NEEDLE\nNEEDLE\nNEEDLE\nNEEDLE\n")
	cfg := defaultCfg()
	cfg.MaxMatches = 2
	matches, err := File(context.Background(), path, "NEEDLE", cfg)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestFile_PerFileTimeoutYieldsZeroMatchesNotError(t *testing.T) {
	t.Setenv("RFGREP_WORKER_SLEEP", "2")
	path := writeTemp(t, "NEEDLE\n")
	cfg := defaultCfg()
	cfg.PerFileTimeout = 50 * time.Millisecond

	matches, err := File(context.Background(), path, "NEEDLE", cfg)
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestFile_StreamingContextWindowBounds(t *testing.T) {
	content := strings.Repeat("filler line\n", 5) + "NEEDLE in the haystack\n" + strings.Repeat("filler line\n", 5)
	path := writeTemp(t, content)

	matches, err := File(context.Background(), path, "NEEDLE", defaultCfg())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, 6, matches[0].LineNumber)
	require.Len(t, matches[0].ContextBefore, 2)
	require.Len(t, matches[0].ContextAfter, 2)
}

func TestSearchBuffer_MmapModeWholeBufferContext(t *testing.T) {
	content := []byte(strings.Repeat("filler line\n", 5) + "NEEDLE in the haystack\n" + strings.Repeat("filler line\n", 5))
	m, err := newTestMatcher(t)
	require.NoError(t, err)

	matches := searchBuffer(content, "buf.txt", m, defaultCfg())
	require.Len(t, matches, 1)
	require.Equal(t, 6, matches[0].LineNumber)
	require.Equal(t, []string{"filler line", "filler line"}, contentsOf(matches[0].ContextBefore))
	require.Equal(t, []string{"filler line", "filler line"}, contentsOf(matches[0].ContextAfter))
}
