package matcher

import (
	"sort"

	"github.com/rfgrep/rfgrep/internal/types"
)

// SearchWithContext runs m over the full in-memory text and builds Match
// records with surrounding context, per spec section 4.1: line number is
// 1 + the newline count before the match, column-start is the offset from
// the preceding newline, and context-before/after gather up to contextLines
// neighboring lines (fewer at file boundaries). This is the whole-buffer
// variant used by mmap ingestion; streaming ingestion builds its own
// records incrementally with a line ring instead of re-splitting the file.
func SearchWithContext(m Matcher, path string, text []byte, contextLines int) []types.Match {
	spans := m.Search(text)
	if len(spans) == 0 {
		return nil
	}

	starts := lineStarts(text)
	lines := splitLines(text, starts)

	out := make([]types.Match, 0, len(spans))
	for _, sp := range spans {
		idx := lineIndexForOffset(starts, sp.Start)
		lineNumber := idx + 1
		columnStart := sp.Start - starts[idx]
		columnEnd := columnStart + (sp.End - sp.Start)

		out = append(out, types.Match{
			Path:          path,
			LineNumber:    lineNumber,
			Line:          lines[idx],
			MatchedText:   string(text[sp.Start:sp.End]),
			ColumnStart:   columnStart,
			ColumnEnd:     columnEnd,
			ContextBefore: contextBefore(lines, idx, contextLines),
			ContextAfter:  contextAfter(lines, idx, contextLines),
		})
	}
	return out
}

// Lines splits text into its constituent lines the same way SearchWithContext
// does internally, for callers (invert-match handling) that need the line
// structure without running a matcher over it.
func Lines(text []byte) []string {
	return splitLines(text, lineStarts(text))
}

// lineStarts returns the byte offset at which each line begins; line 0
// (1-based line 1) always starts at offset 0.
func lineStarts(text []byte) []int {
	starts := []int{0}
	for i, b := range text {
		if b == '\n' && i+1 < len(text) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func splitLines(text []byte, starts []int) []string {
	lines := make([]string, len(starts))
	for i, s := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1] - 1 // drop the trailing '\n'
		} else if end > s && text[end-1] == '\n' {
			end--
		}
		lines[i] = string(text[s:end])
	}
	return lines
}

func lineIndexForOffset(starts []int, offset int) int {
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
	return i - 1
}

func contextBefore(lines []string, idx, k int) []types.ContextLine {
	if k <= 0 {
		return nil
	}
	start := idx - k
	if start < 0 {
		start = 0
	}
	out := make([]types.ContextLine, 0, idx-start)
	for i := start; i < idx; i++ {
		out = append(out, types.ContextLine{LineNumber: i + 1, Content: lines[i]})
	}
	return out
}

func contextAfter(lines []string, idx, k int) []types.ContextLine {
	if k <= 0 {
		return nil
	}
	end := idx + k + 1
	if end > len(lines) {
		end = len(lines)
	}
	out := make([]types.ContextLine, 0, end-idx-1)
	for i := idx + 1; i < end; i++ {
		out = append(out, types.ContextLine{LineNumber: i + 1, Content: lines[i]})
	}
	return out
}
