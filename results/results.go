// Package results stores the offsets produced by a search session.
package results

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Set is an ordered set of match offsets. It is not safe for concurrent use.
type Set struct {
	rb *roaring64.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring64.New()}
}

// Add records an offset. Negative offsets are ignored.
func (s *Set) Add(off int) {
	if off < 0 {
		return
	}
	s.rb.Add(uint64(off))
}

// Contains reports whether off was recorded.
func (s *Set) Contains(off int) bool {
	return off >= 0 && s.rb.Contains(uint64(off))
}

// Len returns the number of offsets.
func (s *Set) Len() int { return int(s.rb.GetCardinality()) }

// Clear removes every offset.
func (s *Set) Clear() { s.rb.Clear() }

// At returns the i-th smallest offset.
func (s *Set) At(i int) (int, bool) {
	if i < 0 || i >= s.Len() {
		return 0, false
	}
	v, err := s.rb.Select(uint64(i))
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// IndexOf returns the position of off in ascending order, or -1.
func (s *Set) IndexOf(off int) int {
	if !s.Contains(off) {
		return -1
	}
	return int(s.rb.Rank(uint64(off))) - 1
}

// Next returns the smallest offset >= from.
func (s *Set) Next(from int) (int, bool) {
	it := s.rb.Iterator()
	if from > 0 {
		it.AdvanceIfNeeded(uint64(from))
	}
	if !it.HasNext() {
		return 0, false
	}
	return int(it.Next()), true
}

// Prev returns the largest offset < before.
func (s *Set) Prev(before int) (int, bool) {
	if before <= 0 {
		return 0, false
	}
	k := s.rb.Rank(uint64(before - 1))
	if k == 0 {
		return 0, false
	}
	return s.At(int(k - 1))
}

// Page returns up to n offsets starting at the i-th smallest.
func (s *Set) Page(i, n int) []int {
	first, ok := s.At(i)
	if !ok || n <= 0 {
		return nil
	}
	out := make([]int, 0, min(n, s.Len()-i))
	it := s.rb.Iterator()
	it.AdvanceIfNeeded(uint64(first))
	for len(out) < n && it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// All yields every offset in ascending order.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}
