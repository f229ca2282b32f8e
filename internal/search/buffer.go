package search

import (
	"github.com/rfgrep/rfgrep/internal/matcher"
	"github.com/rfgrep/rfgrep/internal/types"
)

// searchBuffer handles the mmap-mode whole-buffer search: split on '\n'
// into an indexed line slice, then scan sequentially (spec section 4.5).
func searchBuffer(data []byte, path string, m matcher.Matcher, cfg types.StreamingConfig) []types.Match {
	if cfg.InvertMatch {
		return invertedBufferMatches(data, path, m)
	}
	return matcher.SearchWithContext(m, path, data, cfg.ContextLines)
}

// invertedBufferMatches selects lines that do NOT contain the pattern.
// Column spans are reported as (0, line length); per the resolved open
// question, context lists stay empty regardless of the configured
// context-lines count, since an inverted match has no single match offset
// to center context on.
func invertedBufferMatches(data []byte, path string, m matcher.Matcher) []types.Match {
	lines := matcher.Lines(data)
	var out []types.Match
	for i, line := range lines {
		if len(m.Search([]byte(line))) > 0 {
			continue
		}
		out = append(out, types.Match{
			Path:        path,
			LineNumber:  i + 1,
			Line:        line,
			MatchedText: line,
			ColumnStart: 0,
			ColumnEnd:   len(line),
		})
	}
	return out
}
