package results

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New()
	for _, off := range []int{12, 0, 1 << 33, 12, -4, 40} {
		s.Add(off)
	}

	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Contains(12))
	assert.True(t, s.Contains(1<<33))
	assert.False(t, s.Contains(-4))
	assert.Equal(t, []int{0, 12, 40, 1 << 33}, slices.Collect(s.All()))

	off, ok := s.At(2)
	assert.True(t, ok)
	assert.Equal(t, 40, off)
	_, ok = s.At(4)
	assert.False(t, ok)

	assert.Equal(t, 1, s.IndexOf(12))
	assert.Equal(t, 3, s.IndexOf(1<<33))
	assert.Equal(t, -1, s.IndexOf(13))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok = s.Next(0)
	assert.False(t, ok)
}

func TestSetNavigation(t *testing.T) {
	s := New()
	for _, off := range []int{5, 10, 20} {
		s.Add(off)
	}

	tests := []struct {
		at         int
		next, prev int
		hasNext    bool
		hasPrev    bool
	}{
		{at: 0, next: 5, hasNext: true},
		{at: 5, next: 5, hasNext: true},
		{at: 6, next: 10, prev: 5, hasNext: true, hasPrev: true},
		{at: 20, next: 20, prev: 10, hasNext: true, hasPrev: true},
		{at: 21, prev: 20, hasPrev: true},
	}
	for _, tt := range tests {
		next, ok := s.Next(tt.at)
		if ok != tt.hasNext || (ok && next != tt.next) {
			t.Errorf("Next(%d) = %d, %v; want %d, %v", tt.at, next, ok, tt.next, tt.hasNext)
		}
		prev, ok := s.Prev(tt.at)
		if ok != tt.hasPrev || (ok && prev != tt.prev) {
			t.Errorf("Prev(%d) = %d, %v; want %d, %v", tt.at, prev, ok, tt.prev, tt.hasPrev)
		}
	}
}

func TestSetPage(t *testing.T) {
	s := New()
	for i := 0; i < 100; i++ {
		s.Add(i * 3)
	}
	assert.Equal(t, []int{30, 33, 36}, s.Page(10, 3))
	assert.Equal(t, []int{294, 297}, s.Page(98, 10))
	assert.Nil(t, s.Page(100, 10))
	assert.Nil(t, s.Page(0, 0))
}
