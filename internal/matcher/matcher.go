// Package matcher implements the four pattern-matching backends (SIMD,
// Boyer-Moore, regex, naive) and the context-building wrapper shared by all
// of them. Matchers are leaves in the dependency graph: every other
// component in the pipeline depends on this package, never the reverse.
package matcher

import (
	"fmt"

	"github.com/rfgrep/rfgrep/internal/types"
)

// Span is a half-open byte range [Start, End) within the searched text.
type Span struct {
	Start, End int
}

// Matcher finds non-overlapping occurrences of a compiled pattern in a byte
// slice. Every implementation advances past a full match on success, so
// "aa" in "aaaa" yields {0,2},{2,4} — never an overlapping {1,3}.
type Matcher interface {
	// Search returns the non-overlapping match spans in text, in
	// left-to-right order. An empty pattern returns nil.
	Search(text []byte) []Span
}

// New compiles pattern into the requested matcher backend.
func New(algo types.Algorithm, pattern string, caseSensitive bool) (Matcher, error) {
	switch algo {
	case types.AlgorithmSIMD:
		return newSIMDMatcher(pattern, caseSensitive), nil
	case types.AlgorithmBoyerMoore:
		return newBoyerMoore(pattern, caseSensitive), nil
	case types.AlgorithmRegex:
		return newRegexMatcher(pattern, caseSensitive)
	case types.AlgorithmSimple:
		return newNaiveMatcher(pattern, caseSensitive), nil
	default:
		return nil, fmt.Errorf("matcher: unknown algorithm %v", algo)
	}
}
