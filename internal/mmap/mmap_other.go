//go:build !unix && !windows

package mmap

import (
	"io"
	"os"
)

// Platforms without mmap read the file into the heap instead.
func mapFile(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}

func advise([]byte, Advice) error { return nil }
