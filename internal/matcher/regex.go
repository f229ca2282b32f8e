package matcher

import "fmt"

// regexMatcher is a thin wrapper over the standard library's regexp engine,
// backed by the process-wide bounded regex cache. Case-insensitivity is
// encoded by prefixing "(?i)" rather than passed as a compile flag, matching
// the spec and the original implementation.
type regexMatcher struct {
	re    regexpFindAller
	empty bool
}

// regexpFindAller narrows *regexp.Regexp to the one method this package
// needs, so tests can swap in a fake without dragging in regexp directly.
type regexpFindAller interface {
	FindAllIndex(b []byte, n int) [][]int
}

func newRegexMatcher(pattern string, caseSensitive bool) (*regexMatcher, error) {
	key := pattern
	effective := pattern
	if !caseSensitive {
		effective = "(?i)" + pattern
		key = "i:" + pattern
	} else {
		key = "s:" + pattern
	}

	re, err := sharedRegexCache.getOrCompile(key, effective)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	return &regexMatcher{re: re, empty: pattern == ""}, nil
}

func (m *regexMatcher) Search(text []byte) []Span {
	if m.empty {
		return nil
	}
	idxs := m.re.FindAllIndex(text, -1)
	if len(idxs) == 0 {
		return nil
	}
	spans := make([]Span, len(idxs))
	for i, pair := range idxs {
		spans[i] = Span{Start: pair[0], End: pair[1]}
	}
	return spans
}
