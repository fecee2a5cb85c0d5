package haystack

import "github.com/mhr3/hexseek/internal/mmap"

// Mapped is a read-only memory-mapped file.
type Mapped struct {
	m *mmap.Mapping
}

// OpenMapped maps the file at path. The mapping is released by Close.
func OpenMapped(path string) (*Mapped, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &Mapped{m: m}, nil
}

// Bytes returns the mapped file, or nil after Close.
func (m *Mapped) Bytes() []byte { return m.m.Bytes() }

func (m *Mapped) Len() int { return m.m.Len() }

func (m *Mapped) AdviseSequential() error {
	return m.m.Advise(mmap.AdviceSequential)
}

func (m *Mapped) Close() error { return m.m.Close() }

// OpenSharedMapped maps path behind a reference-counted handle. The file is
// unmapped when the last handle is closed.
func OpenSharedMapped(path string) (*Shared, error) {
	m, err := OpenMapped(path)
	if err != nil {
		return nil, err
	}
	return NewShared(m, m.Close), nil
}
