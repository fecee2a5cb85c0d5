//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

func advise(data []byte, a Advice) error {
	var flag int
	switch a {
	case AdviceSequential:
		flag = unix.MADV_SEQUENTIAL
	case AdviceRandom:
		flag = unix.MADV_RANDOM
	case AdviceWillNeed:
		flag = unix.MADV_WILLNEED
	case AdviceDontNeed:
		flag = unix.MADV_DONTNEED
	default:
		flag = unix.MADV_NORMAL
	}
	// Hints are advisory; an unaligned or unsupported range is not an error.
	if err := unix.Madvise(data, flag); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
