package matcher

import (
	"testing"

	"github.com/rfgrep/rfgrep/internal/types"
	"github.com/stretchr/testify/require"
)

func allAlgorithms() []types.Algorithm {
	return []types.Algorithm{
		types.AlgorithmSIMD,
		types.AlgorithmBoyerMoore,
		types.AlgorithmRegex,
		types.AlgorithmSimple,
	}
}

func offsetsOf(t *testing.T, spans []Span) []int {
	t.Helper()
	out := make([]int, len(spans))
	for i, s := range spans {
		out[i] = s.Start
	}
	return out
}

func TestMatchers_AgreeOnOffsets(t *testing.T) {
	text := []byte("the quick brown fox jumps over the lazy dog, the fox runs")
	for _, algo := range allAlgorithms() {
		m, err := New(algo, "fox", true)
		require.NoError(t, err)
		spans := m.Search(text)
		require.Equal(t, []int{16, 49}, offsetsOf(t, spans), "algorithm %v", algo)
		for _, sp := range spans {
			require.Equal(t, "fox", string(text[sp.Start:sp.End]))
		}
	}
}

func TestMatchers_EmptyPatternReturnsEmpty(t *testing.T) {
	text := []byte("anything at all")
	for _, algo := range allAlgorithms() {
		m, err := New(algo, "", true)
		require.NoError(t, err)
		require.Empty(t, m.Search(text))
	}
}

func TestMatchers_CaseSensitivity(t *testing.T) {
	text := []byte("Hello WORLD hello world")
	for _, algo := range allAlgorithms() {
		m, err := New(algo, "hello", true)
		require.NoError(t, err)
		spans := m.Search(text)
		require.Equal(t, []int{12}, offsetsOf(t, spans), "algorithm %v case-sensitive", algo)

		mi, err := New(algo, "hello", false)
		require.NoError(t, err)
		spansI := mi.Search(text)
		require.Equal(t, []int{0, 12}, offsetsOf(t, spansI), "algorithm %v case-insensitive", algo)
	}
}

func TestMatchers_NonOverlapping(t *testing.T) {
	text := []byte("aaaa")
	for _, algo := range allAlgorithms() {
		m, err := New(algo, "aa", true)
		require.NoError(t, err)
		spans := m.Search(text)
		require.Equal(t, []int{0, 2}, offsetsOf(t, spans), "algorithm %v", algo)
	}
}

func TestMatchers_PatternAtByteZero(t *testing.T) {
	text := []byte("startmiddleend")
	for _, algo := range allAlgorithms() {
		m, err := New(algo, "start", true)
		require.NoError(t, err)
		spans := m.Search(text)
		require.Equal(t, []int{0}, offsetsOf(t, spans), "algorithm %v", algo)
	}
}

func TestMatchers_PatternAtFinalByte(t *testing.T) {
	text := []byte("middlestartend")
	for _, algo := range allAlgorithms() {
		m, err := New(algo, "end", true)
		require.NoError(t, err)
		spans := m.Search(text)
		require.Equal(t, []int{11}, offsetsOf(t, spans), "algorithm %v", algo)
	}
}

func TestMatchers_PatternLongerThanText(t *testing.T) {
	text := []byte("short")
	for _, algo := range allAlgorithms() {
		m, err := New(algo, "much longer than the text", true)
		require.NoError(t, err)
		require.Empty(t, m.Search(text))
	}
}

func TestSearchWithContext_Invariants(t *testing.T) {
	text := []byte("line 1\nline 2\nMATCH line\nline 4\nline 5\n")
	m, err := New(types.AlgorithmSimple, "MATCH", true)
	require.NoError(t, err)

	matches := SearchWithContext(m, "f.txt", text, 2)
	require.Len(t, matches, 1)

	match := matches[0]
	require.Equal(t, 3, match.LineNumber)
	require.Equal(t, []types.ContextLine{{LineNumber: 1, Content: "line 1"}, {LineNumber: 2, Content: "line 2"}}, match.ContextBefore)
	require.Equal(t, []types.ContextLine{{LineNumber: 4, Content: "line 4"}, {LineNumber: 5, Content: "line 5"}}, match.ContextAfter)

	for _, c := range match.ContextBefore {
		require.Less(t, c.LineNumber, match.LineNumber)
	}
	for _, c := range match.ContextAfter {
		require.Greater(t, c.LineNumber, match.LineNumber)
	}
	require.LessOrEqual(t, match.ColumnStart, match.ColumnEnd)
	require.LessOrEqual(t, match.ColumnEnd, len(match.Line))
}

func TestSearchWithContext_FewerLinesAtBoundaries(t *testing.T) {
	text := []byte("MATCH\nline 2\n")
	m, err := New(types.AlgorithmSimple, "MATCH", true)
	require.NoError(t, err)

	matches := SearchWithContext(m, "f.txt", text, 5)
	require.Len(t, matches, 1)
	require.Empty(t, matches[0].ContextBefore)
	require.Equal(t, []types.ContextLine{{LineNumber: 2, Content: "line 2"}}, matches[0].ContextAfter)
}

func TestRegexMatcher_CacheReuse(t *testing.T) {
	m1, err := New(types.AlgorithmRegex, `\d+`, true)
	require.NoError(t, err)
	m2, err := New(types.AlgorithmRegex, `\d+`, true)
	require.NoError(t, err)

	text := []byte("abc 123 def 456")
	require.Equal(t, m1.Search(text), m2.Search(text))
}

func TestRegexMatcher_InvalidPattern(t *testing.T) {
	_, err := New(types.AlgorithmRegex, `(unclosed`, true)
	require.Error(t, err)
}
