package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o600))

	w, err := New(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.bin"), []byte{0}, 0o600))
	select {
	case <-w.Changes():
		t.Fatal("change reported for another file")
	case <-time.After(100 * time.Millisecond):
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0o600))
	}
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "data.bin"), time.Millisecond, nil)
	require.Error(t, err)
}
