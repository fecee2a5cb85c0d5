package haystack

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Load opens the file at path as a shared haystack. Files ending in .zst or
// .lz4 are decompressed into memory; everything else is memory-mapped.
func Load(path string) (*Shared, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		b, err := decompressFile(path, newZstdReader)
		if err != nil {
			return nil, err
		}
		return NewShared(b, nil), nil
	case ".lz4":
		b, err := decompressFile(path, newLZ4Reader)
		if err != nil {
			return nil, err
		}
		return NewShared(b, nil), nil
	}
	return OpenSharedMapped(path)
}

type readerFunc func(io.Reader) (io.Reader, func(), error)

func newZstdReader(r io.Reader) (io.Reader, func(), error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, nil, err
	}
	return dec, dec.Close, nil
}

func newLZ4Reader(r io.Reader) (io.Reader, func(), error) {
	return lz4.NewReader(r), func() {}, nil
}

func decompressFile(path string, open readerFunc) (Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, done, err := open(f)
	if err != nil {
		return nil, fmt.Errorf("haystack: open %s: %w", path, err)
	}
	defer done()

	var hint int64
	if fi, err := f.Stat(); err == nil {
		hint = fi.Size() * 2
	}
	b, err := ReadAll(r, hint)
	if err != nil {
		return nil, fmt.Errorf("haystack: decompress %s: %w", path, err)
	}
	return b, nil
}

// ReadAll reads r to EOF into a new Buffer. sizeHint pre-sizes the buffer
// when the final size is known or can be estimated; it may be 0.
func ReadAll(r io.Reader, sizeHint int64) (Buffer, error) {
	var buf bytes.Buffer
	if sizeHint > 0 && int64(int(sizeHint)) == sizeHint {
		buf.Grow(int(sizeHint))
	}
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return Buffer(buf.Bytes()), nil
}
