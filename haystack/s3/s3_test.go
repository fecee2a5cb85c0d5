package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGetter serves ranged GETs from an in-memory object.
type fakeGetter struct {
	objects map[string][]byte
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	start, end := int64(0), int64(len(data))-1
	if r := aws.ToString(in.Range); r != "" {
		if _, err := fmt.Sscanf(strings.TrimPrefix(r, "bytes="), "%d-%d", &start, &end); err != nil {
			return nil, err
		}
		if end >= int64(len(data)) {
			end = int64(len(data)) - 1
		}
	}
	body := data[start : end+1]
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
		ContentRange:  aws.String(fmt.Sprintf("bytes %d-%d/%d", start, end, len(data))),
	}, nil
}

func TestFetch(t *testing.T) {
	obj := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 4096)
	client := &fakeGetter{objects: map[string][]byte{"bucket/dump.bin": obj}}

	h, err := Fetch(context.Background(), client, "bucket", "dump.bin", func(d *manager.Downloader) {
		d.PartSize = manager.MinUploadPartSize
		d.Concurrency = 2
	})
	require.NoError(t, err)
	assert.Equal(t, obj, h.Bytes())
}

func TestFetchMissing(t *testing.T) {
	client := &fakeGetter{objects: map[string][]byte{}}
	_, err := Fetch(context.Background(), client, "bucket", "missing.bin")
	assert.ErrorContains(t, err, "s3://bucket/missing.bin")
}
