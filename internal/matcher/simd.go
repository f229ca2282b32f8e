package matcher

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// simdTier names the vector-width tier a host was probed into, in the
// spec's strict preference order.
type simdTier int

const (
	tierAVX512 simdTier = iota // 64-byte stride
	tierAVX2                   // 32-byte stride
	tierSSE42                  // 16-byte stride
	tierScalar                 // no vector unit: one 8-byte SWAR word per step
)

func (t simdTier) stride() int {
	switch t {
	case tierAVX512:
		return 64
	case tierAVX2:
		return 32
	case tierSSE42:
		return 16
	default:
		return 1
	}
}

// detectTier probes CPU features once at matcher construction, in strict
// preference order AVX-512 -> AVX2 -> SSE4.2 -> scalar.
func detectTier() simdTier {
	switch {
	case cpu.X86.HasAVX512F:
		return tierAVX512
	case cpu.X86.HasAVX2:
		return tierAVX2
	case cpu.X86.HasSSE42:
		return tierSSE42
	default:
		return tierScalar
	}
}

// simdMatcher is the byte-search backend. This module carries no hand
// written assembly, so the vector tiers are approximated with word-parallel
// (SWAR) scans over 8-byte lanes — the tier only changes how many lanes are
// compared per outer-loop iteration before falling through to the tail
// scalar loop, which mirrors the spec's "broadcast first byte, compare,
// extract bitmask, iterate set bits, verify full match" shape without
// needing real vector registers.
type simdMatcher struct {
	pattern       []byte
	caseSensitive bool
	tier          simdTier
}

func newSIMDMatcher(pattern string, caseSensitive bool) *simdMatcher {
	p := []byte(pattern)
	if !caseSensitive {
		p = bytes.ToLower(p)
	}
	return &simdMatcher{pattern: p, caseSensitive: caseSensitive, tier: detectTier()}
}

func (m *simdMatcher) Search(text []byte) []Span {
	n := len(m.pattern)
	if n == 0 {
		return nil
	}

	haystack := text
	if !m.caseSensitive {
		haystack = bytes.ToLower(text)
	}

	first := m.pattern[0]
	last := m.pattern[n-1]
	lanes := m.tier.stride() / 8
	if lanes < 1 {
		lanes = 1
	}

	var spans []Span
	i := 0
	for i < len(haystack) {
		candidate := findCandidate(haystack, first, i, lanes)
		if candidate < 0 {
			break
		}

		if candidate+n > len(haystack) {
			break
		}

		if haystack[candidate+n-1] == last && bytes.Equal(haystack[candidate:candidate+n], m.pattern) {
			spans = append(spans, Span{Start: candidate, End: candidate + n})
			i = candidate + n
			continue
		}

		i = candidate + 1
	}

	return spans
}

// findCandidate returns the offset of the next occurrence of b in
// haystack[from:], or -1. It scans `lanes` 8-byte words per iteration using
// the classic "has-zero-byte" SWAR trick before falling back to a
// byte-at-a-time tail scan, standing in for a wider vector compare.
func findCandidate(haystack []byte, b byte, from, lanes int) int {
	i := from
	wordBytes := lanes * 8
	broadcast := uint64(b) * 0x0101010101010101

	for i+wordBytes <= len(haystack) {
		for lane := 0; lane < lanes; lane++ {
			off := i + lane*8
			word := binary.LittleEndian.Uint64(haystack[off : off+8])
			x := word ^ broadcast
			// hasZeroByte: any lane byte equal to b produces a zero byte in x.
			hasZero := (x - 0x0101010101010101) & ^x & 0x8080808080808080
			if hasZero != 0 {
				// bits.TrailingZeros64 / 8 gives the zero byte's lane index.
				byteIdx := bits.TrailingZeros64(hasZero) / 8
				return off + byteIdx
			}
		}
		i += wordBytes
	}

	for ; i < len(haystack); i++ {
		if haystack[i] == b {
			return i
		}
	}
	return -1
}
