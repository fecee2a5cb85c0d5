// Package minio loads haystacks from MinIO or other S3-compatible stores.
package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/mhr3/hexseek/haystack"
)

// Fetch reads bucket/object fully into memory.
func Fetch(ctx context.Context, client *minio.Client, bucket, object string) (haystack.Buffer, error) {
	obj, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio: get %s/%s: %w", bucket, object, err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("minio: stat %s/%s: %w", bucket, object, err)
	}
	return readSized(obj, info.Size)
}

// readSized reads exactly size bytes when size is known, or to EOF when it
// is negative.
func readSized(r io.Reader, size int64) (haystack.Buffer, error) {
	if size < 0 {
		return haystack.ReadAll(r, 0)
	}
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("minio: short read: %w", err)
	}
	return haystack.Buffer(b), nil
}
