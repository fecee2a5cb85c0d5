// Package mmap maps files read-only into memory so they can be searched in
// place. Unix uses mmap(2) and madvise(2); Windows uses MapViewOfFile and
// ignores access hints.
package mmap

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
)

// Advice is a hint to the kernel about upcoming accesses.
type Advice int

const (
	AdviceNormal Advice = iota
	AdviceSequential
	AdviceRandom
	AdviceWillNeed
	AdviceDontNeed
)

var (
	ErrClosed      = errors.New("mmap: mapping is closed")
	ErrInvalidSize = errors.New("mmap: invalid file size")
)

// Mapping is a read-only view of a whole file.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path. Empty files yield a Mapping with no data.
// The file descriptor is closed before Open returns; the mapping stays
// valid until Close.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	switch {
	case size == 0:
		return &Mapping{}, nil
	case size < 0 || int64(int(size)) != size:
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSize, size)
	}

	data, unmap, err := mapFile(f, int(size))
	if err != nil {
		return nil, fmt.Errorf("mmap: map %s: %w", path, err)
	}
	return &Mapping{data: data, unmap: unmap}, nil
}

// Bytes returns the mapped memory, or nil after Close.
// Touching a previously returned slice after Close faults.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

func (m *Mapping) Len() int { return len(m.data) }

// Advise forwards an access hint for the whole mapping.
func (m *Mapping) Advise(a Advice) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if len(m.data) == 0 {
		return nil
	}
	return advise(m.data, a)
}

// Close unmaps the file. Calling it more than once is a no-op.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap == nil || m.data == nil {
		return nil
	}
	return m.unmap(m.data)
}
