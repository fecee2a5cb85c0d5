// Package search finds every occurrence of a byte pattern in a haystack,
// either synchronously through a Finder or in the background through a
// Session that streams offsets to a polling caller.
package search

import (
	"iter"

	"github.com/mhr3/hexseek/internal/bytealg"
)

// Finder performs repeated searches for one pattern.
// Construct once with NewFinder, then run it over any number of haystacks.
type Finder struct {
	pat *bytealg.Pattern
}

// NewFinder compiles pattern. The pattern is not copied and must not change
// while the Finder is in use.
func NewFinder(pattern []byte) Finder {
	return Finder{pat: bytealg.Compile(pattern)}
}

// Len returns the pattern length.
func (f Finder) Len() int { return f.pat.Len() }

// Index returns the first match in haystack, or -1. An empty pattern
// matches nothing.
func (f Finder) Index(haystack []byte) int {
	if f.pat.Len() == 0 {
		return -1
	}
	return f.pat.Index(haystack)
}

// All yields the offset of every match in haystack in increasing order,
// overlapping matches included. The sequence is lazy: the haystack is only
// scanned as far as the consumer pulls. Ranging over it again restarts the
// scan from the beginning.
func (f Finder) All(haystack []byte) iter.Seq[int] {
	return func(yield func(int) bool) {
		n := f.pat.Len()
		if n == 0 || n > len(haystack) {
			return
		}
		for base := 0; base <= len(haystack)-n; {
			i := f.pat.Index(haystack[base:])
			if i < 0 {
				return
			}
			if !yield(base + i) {
				return
			}
			base += i + 1
		}
	}
}

// FindAll is shorthand for NewFinder(pattern).All(haystack).
func FindAll(haystack, pattern []byte) iter.Seq[int] {
	return NewFinder(pattern).All(haystack)
}
