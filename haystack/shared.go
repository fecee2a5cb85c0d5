package haystack

import (
	"sync"
	"sync/atomic"
)

type sharedState struct {
	h       Haystack
	refs    atomic.Int64
	release func() error
	once    sync.Once
	err     error
}

// Shared is a reference-counted handle to a Haystack. Each handle is closed
// independently; the underlying release function runs once, when the last
// handle is closed.
type Shared struct {
	st     *sharedState
	closed atomic.Bool
}

// NewShared returns the first handle to h. release may be nil.
func NewShared(h Haystack, release func() error) *Shared {
	st := &sharedState{h: h, release: release}
	st.refs.Store(1)
	return &Shared{st: st}
}

// Clone returns a new handle to the same haystack. Cloning a closed handle
// panics: the memory may already be released.
func (s *Shared) Clone() *Shared {
	if s.closed.Load() {
		panic("haystack: Clone of closed Shared")
	}
	s.st.refs.Add(1)
	return &Shared{st: s.st}
}

// Bytes returns the shared buffer, or nil once this handle is closed.
func (s *Shared) Bytes() []byte {
	if s.closed.Load() {
		return nil
	}
	return s.st.h.Bytes()
}

// Refs returns the number of open handles.
func (s *Shared) Refs() int64 { return s.st.refs.Load() }

func (s *Shared) AdviseSequential() error {
	if s.closed.Load() {
		return nil
	}
	if seq, ok := s.st.h.(Sequencer); ok {
		return seq.AdviseSequential()
	}
	return nil
}

// Close drops this handle. The error of the release function is returned
// to the caller that dropped the last reference.
func (s *Shared) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if s.st.refs.Add(-1) != 0 {
		return nil
	}
	s.st.once.Do(func() {
		if s.st.release != nil {
			s.st.err = s.st.release()
		}
	})
	return s.st.err
}
