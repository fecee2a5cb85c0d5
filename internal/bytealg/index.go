// Package bytealg holds the byte-level kernels behind the search package.
package bytealg

import "bytes"

// Staged search for patterns of two or more bytes:
//   Stage 1: rare-byte filter. bytes.IndexByte jumps to the next occurrence
//            of the pattern's rarest byte and the window around it is
//            verified. Fast while that byte really is rare.
//   Stage 2: Horspool. Once the filter has produced too many false
//            positives for the amount of haystack it skipped, the scan
//            continues with the bad-character skip loop, which never steps
//            back and skips up to len(pattern) bytes per mismatch.

// Pattern is a compiled search pattern. It is immutable after Compile and
// safe for concurrent use.
type Pattern struct {
	needle  []byte
	rare    byte
	rareOff int
	shift   [256]int
}

// Compile analyses needle once for repeated searches. The needle is not
// copied and must not be modified while the Pattern is in use.
func Compile(needle []byte) *Pattern {
	p := &Pattern{needle: needle}
	n := len(needle)
	if n == 0 {
		return p
	}
	p.rareOff = rarest(needle)
	p.rare = needle[p.rareOff]

	for i := range p.shift {
		p.shift[i] = n
	}
	for i := 0; i < n-1; i++ {
		p.shift[needle[i]] = n - 1 - i
	}
	return p
}

// Len returns the pattern length.
func (p *Pattern) Len() int { return len(p.needle) }

// Index returns the first offset of the pattern in haystack, or -1.
// An empty pattern matches at 0, as with bytes.Index.
func (p *Pattern) Index(haystack []byte) int {
	n := len(p.needle)
	switch {
	case n == 0:
		return 0
	case len(haystack) < n:
		return -1
	case n == 1:
		return bytes.IndexByte(haystack, p.needle[0])
	}

	// Quick check for position-0 match
	if haystack[0] == p.needle[0] && bytes.Equal(haystack[:n], p.needle) {
		return 0
	}

	pos, ok := p.indexRare(haystack)
	if ok {
		return pos
	}
	return p.indexHorspool(haystack, pos)
}

// falsePositiveLimit decides when the rare-byte filter stops paying off:
// allow a fixed number of misses plus one per 16 bytes skipped.
func falsePositiveLimit(skipped int) int {
	return 8 + skipped>>4
}

// indexRare runs stage 1. It returns (offset, true) when it reached a
// verdict, or (resume, false) when the filter gave up at resume.
func (p *Pattern) indexRare(haystack []byte) (int, bool) {
	n := len(p.needle)
	last := len(haystack) - n
	misses := 0
	for i := 0; i <= last; {
		j := bytes.IndexByte(haystack[i+p.rareOff:last+p.rareOff+1], p.rare)
		if j < 0 {
			return -1, true
		}
		cand := i + j
		if bytes.Equal(haystack[cand:cand+n], p.needle) {
			return cand, true
		}
		misses++
		i = cand + 1
		if misses > falsePositiveLimit(i) {
			return i, false
		}
	}
	return -1, true
}

// indexHorspool runs stage 2 from offset start.
func (p *Pattern) indexHorspool(haystack []byte, start int) int {
	n := len(p.needle)
	last := len(haystack) - n
	tail := p.needle[n-1]
	head := p.needle[:n-1]
	for i := start; i <= last; {
		c := haystack[i+n-1]
		if c == tail && bytes.Equal(haystack[i:i+n-1], head) {
			return i
		}
		i += p.shift[c]
	}
	return -1
}
