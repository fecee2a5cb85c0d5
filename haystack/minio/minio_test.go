package minio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSized(t *testing.T) {
	data := []byte("0123456789")

	b, err := readSized(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, data, b.Bytes())

	b, err = readSized(bytes.NewReader(data), -1)
	require.NoError(t, err)
	assert.Equal(t, data, b.Bytes())

	_, err = readSized(bytes.NewReader(data), 20)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
