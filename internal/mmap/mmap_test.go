package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hay.bin")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestOpen(t *testing.T) {
	want := []byte("0123456789abcdef")
	m, err := Open(writeTemp(t, want))
	require.NoError(t, err)

	assert.Equal(t, want, m.Bytes())
	assert.Equal(t, len(want), m.Len())
	assert.NoError(t, m.Advise(AdviceSequential))

	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.Advise(AdviceRandom), ErrClosed)
	assert.NoError(t, m.Close())
}

func TestOpenEmpty(t *testing.T) {
	m, err := Open(writeTemp(t, nil))
	require.NoError(t, err)
	assert.Empty(t, m.Bytes())
	assert.NoError(t, m.Advise(AdviceSequential))
	assert.NoError(t, m.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
