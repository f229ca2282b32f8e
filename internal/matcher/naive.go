package matcher

import "bytes"

// naiveMatcher is the "simple" algorithm: a linear bytes.Index scan.
// Case-insensitivity folds both text and pattern to lower case up front.
type naiveMatcher struct {
	pattern       []byte
	caseSensitive bool
}

func newNaiveMatcher(pattern string, caseSensitive bool) *naiveMatcher {
	p := []byte(pattern)
	if !caseSensitive {
		p = bytes.ToLower(p)
	}
	return &naiveMatcher{pattern: p, caseSensitive: caseSensitive}
}

func (m *naiveMatcher) Search(text []byte) []Span {
	if len(m.pattern) == 0 {
		return nil
	}

	haystack := text
	if !m.caseSensitive {
		haystack = bytes.ToLower(text)
	}

	var spans []Span
	offset := 0
	for offset < len(haystack) {
		idx := bytes.Index(haystack[offset:], m.pattern)
		if idx < 0 {
			break
		}
		start := offset + idx
		end := start + len(m.pattern)
		spans = append(spans, Span{Start: start, End: end})
		offset = end
	}
	return spans
}
