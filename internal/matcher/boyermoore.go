package matcher

import "bytes"

// boyerMoore implements Boyer-Moore with a bad-character table (shift =
// pattern_len - 1 - last_index_of_byte; absent bytes shift the full pattern
// length) and a simplified good-suffix table, shifting by the larger of the
// two. On a match it advances a full pattern length to keep matches
// non-overlapping.
type boyerMoore struct {
	pattern       []byte
	caseSensitive bool
	badChar       map[byte]int
	goodSuffix    []int
}

func newBoyerMoore(pattern string, caseSensitive bool) *boyerMoore {
	p := []byte(pattern)
	if !caseSensitive {
		p = bytes.ToLower(p)
	}

	bm := &boyerMoore{
		pattern:       p,
		caseSensitive: caseSensitive,
		badChar:       buildBadCharTable(p),
		goodSuffix:    buildGoodSuffixTable(p),
	}
	return bm
}

func buildBadCharTable(pattern []byte) map[byte]int {
	table := make(map[byte]int, len(pattern))
	n := len(pattern)
	for i, b := range pattern {
		table[b] = n - 1 - i
	}
	return table
}

// buildGoodSuffixTable is the simplified (weak-rule) good-suffix table:
// table[j] is the smallest shift that realigns the matched suffix
// pattern[j:] with an earlier occurrence of itself in the pattern, or with a
// pattern prefix where the shifted suffix runs off the front. Unlike the
// strong rule it does not require the byte before that occurrence to differ,
// so it may shift less but never skips a match.
func buildGoodSuffixTable(pattern []byte) []int {
	n := len(pattern)
	table := make([]int, n)
	for j := range table {
		shift := 1
		for ; shift < n; shift++ {
			aligned := true
			for i := j; i < n; i++ {
				if i-shift >= 0 && pattern[i-shift] != pattern[i] {
					aligned = false
					break
				}
			}
			if aligned {
				break
			}
		}
		table[j] = shift
	}
	return table
}

func (m *boyerMoore) Search(text []byte) []Span {
	n := len(m.pattern)
	if n == 0 || len(text) < n {
		return nil
	}

	haystack := text
	if !m.caseSensitive {
		haystack = bytes.ToLower(text)
	}

	var spans []Span
	i := n - 1
	for i < len(haystack) {
		j := n - 1
		k := i
		for j > 0 && haystack[k] == m.pattern[j] {
			k--
			j--
		}

		if j == 0 && haystack[k] == m.pattern[0] {
			start := k
			end := start + n
			spans = append(spans, Span{Start: start, End: end})
			i = end + n - 1
			continue
		}

		badShift, ok := m.badChar[haystack[i]]
		if !ok {
			badShift = n
		}
		goodShift := 1
		if j < n-1 {
			goodShift = m.goodSuffix[j+1]
		}

		shift := badShift
		if goodShift > shift {
			shift = goodShift
		}
		if shift < 1 {
			shift = 1
		}
		i += shift
	}

	return spans
}
