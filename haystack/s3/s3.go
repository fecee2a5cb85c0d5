// Package s3 loads haystacks from Amazon S3 objects.
package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mhr3/hexseek/haystack"
)

// Fetch downloads bucket/key into memory using parallel ranged GETs.
// client is usually an *s3.Client.
func Fetch(ctx context.Context, client manager.DownloadAPIClient, bucket, key string, opts ...func(*manager.Downloader)) (haystack.Buffer, error) {
	d := manager.NewDownloader(client, opts...)
	buf := manager.NewWriteAtBuffer(nil)
	n, err := d.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: fetch s3://%s/%s: %w", bucket, key, err)
	}
	return haystack.Buffer(buf.Bytes()[:n]), nil
}
