package search

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/rfgrep/rfgrep/internal/matcher"
	"github.com/rfgrep/rfgrep/internal/types"
)

type numberedLine struct {
	num  int
	text string
}

// lineSource wraps a bufio.Reader to yield one valid-UTF-8 line at a time,
// silently dropping invalid ones rather than aborting the file (spec
// section 4.5's correction over the original's abort-on-invalid-UTF-8
// behavior). Line numbers still count every physical line, valid or not.
type lineSource struct {
	r      *bufio.Reader
	lineNo int
}

func (s *lineSource) next() (numberedLine, bool) {
	for {
		raw, err := s.r.ReadString('\n')
		if len(raw) == 0 && err != nil {
			return numberedLine{}, false
		}
		s.lineNo++
		text := trimNewline(raw)
		if !utf8.ValidString(text) {
			if err != nil {
				return numberedLine{}, false
			}
			continue
		}
		return numberedLine{num: s.lineNo, text: text}, true
	}
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		if n := len(s); n > 0 && s[n-1] == '\r' {
			s = s[:n-1]
		}
	}
	return s
}

// searchStream implements the streaming mode of C5: a ring of the most
// recent 2k+1 lines; on a match, context-before is the ring's prefix (the
// oldest entries in the window, per spec section 4.5's literal wording)
// and context-after is the next k lines pulled directly from the reader,
// which are not themselves re-scanned for matches.
func searchStream(r io.Reader, path string, m matcher.Matcher, cfg types.StreamingConfig) []types.Match {
	src := &lineSource{r: bufio.NewReader(r)}
	k := cfg.ContextLines
	ring := make([]numberedLine, 0, 2*k+1)

	var out []types.Match
	for {
		line, ok := src.next()
		if !ok {
			break
		}

		ring = append(ring, line)
		if len(ring) > 2*k+1 {
			ring = ring[1:]
		}

		if cfg.InvertMatch {
			if len(m.Search([]byte(line.text))) == 0 {
				out = append(out, types.Match{
					Path:        path,
					LineNumber:  line.num,
					Line:        line.text,
					MatchedText: line.text,
					ColumnStart: 0,
					ColumnEnd:   len(line.text),
				})
			}
			continue
		}

		spans := m.Search([]byte(line.text))
		if len(spans) == 0 {
			continue
		}

		before := ringPrefix(ring, k)
		after := consumeContextAfter(src, k)

		for _, sp := range spans {
			out = append(out, types.Match{
				Path:          path,
				LineNumber:    line.num,
				Line:          line.text,
				MatchedText:   line.text[sp.Start:sp.End],
				ColumnStart:   sp.Start,
				ColumnEnd:     sp.End,
				ContextBefore: before,
				ContextAfter:  after,
			})
		}
	}
	return out
}

// ringPrefix returns up to k of the oldest entries in ring, excluding the
// just-appended current line (the ring's last element).
func ringPrefix(ring []numberedLine, k int) []types.ContextLine {
	if k <= 0 || len(ring) <= 1 {
		return nil
	}
	history := ring[:len(ring)-1]
	n := k
	if n > len(history) {
		n = len(history)
	}
	out := make([]types.ContextLine, n)
	for i := 0; i < n; i++ {
		out[i] = types.ContextLine{LineNumber: history[i].num, Content: history[i].text}
	}
	return out
}

func consumeContextAfter(src *lineSource, k int) []types.ContextLine {
	if k <= 0 {
		return nil
	}
	out := make([]types.ContextLine, 0, k)
	for len(out) < k {
		line, ok := src.next()
		if !ok {
			break
		}
		out = append(out, types.ContextLine{LineNumber: line.num, Content: line.text})
	}
	return out
}
