// Package haystack defines the buffers a search runs over.
//
// Any value that can hand out a stable byte view satisfies Haystack: an
// owned slice, a reference-counted handle or a memory-mapped file. The view
// must not move or change while it is held, and it must be safe to read
// from another goroutine, since searches scan it on a background worker.
// Callers must not write to a haystack while a search over it is running.
package haystack

// Haystack is a read-only byte buffer.
type Haystack interface {
	// Bytes returns the buffer. Repeated calls return the same memory for
	// as long as the Haystack is held.
	Bytes() []byte
}

// Sequencer is implemented by haystacks that benefit from being told a
// front-to-back scan is about to happen, such as memory mappings.
type Sequencer interface {
	AdviseSequential() error
}

// Buffer is an owned in-memory haystack. Fixed-size arrays can be used
// through Buffer(arr[:]).
type Buffer []byte

func (b Buffer) Bytes() []byte { return b }
