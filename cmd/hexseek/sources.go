package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mhr3/hexseek/haystack"
	miniohay "github.com/mhr3/hexseek/haystack/minio"
	s3hay "github.com/mhr3/hexseek/haystack/s3"
	"github.com/mhr3/hexseek/internal/config"
	"github.com/mhr3/hexseek/internal/driver"
)

const (
	s3Scheme    = "s3://"
	minioScheme = "minio://"
)

func isRemote(name string) bool {
	return strings.HasPrefix(name, s3Scheme) || strings.HasPrefix(name, minioScheme)
}

// splitObject splits "bucket/key/with/slashes" after the scheme.
func splitObject(name, scheme string) (bucket, key string, err error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(name, scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid object URL %q, want %sbucket/key", name, scheme)
	}
	return bucket, key, nil
}

// opener turns source names into haystacks. Remote clients are created on
// first use and shared by all sources.
type opener struct {
	cfg *config.Config

	s3Once    sync.Once
	s3Client  *s3.Client
	s3Err     error
	minioOnce sync.Once
	minio     *minio.Client
	minioErr  error
}

func (o *opener) source(name string) driver.Source {
	return driver.Source{
		Name: name,
		Open: func(ctx context.Context) (haystack.Haystack, error) { return o.open(ctx, name) },
	}
}

func (o *opener) open(ctx context.Context, name string) (haystack.Haystack, error) {
	switch {
	case strings.HasPrefix(name, s3Scheme):
		bucket, key, err := splitObject(name, s3Scheme)
		if err != nil {
			return nil, err
		}
		client, err := o.s3API(ctx)
		if err != nil {
			return nil, err
		}
		return s3hay.Fetch(ctx, client, bucket, key, func(d *manager.Downloader) {
			d.Concurrency = o.cfg.S3.Concurrency
		})

	case strings.HasPrefix(name, minioScheme):
		bucket, key, err := splitObject(name, minioScheme)
		if err != nil {
			return nil, err
		}
		client, err := o.minioClient()
		if err != nil {
			return nil, err
		}
		return miniohay.Fetch(ctx, client, bucket, key)
	}
	return haystack.Load(name)
}

func (o *opener) s3API(ctx context.Context) (*s3.Client, error) {
	o.s3Once.Do(func() {
		var opts []func(*awsconfig.LoadOptions) error
		if o.cfg.S3.Region != "" {
			opts = append(opts, awsconfig.WithRegion(o.cfg.S3.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			o.s3Err = fmt.Errorf("load AWS config: %w", err)
			return
		}
		o.s3Client = s3.NewFromConfig(awsCfg)
	})
	return o.s3Client, o.s3Err
}

func (o *opener) minioClient() (*minio.Client, error) {
	o.minioOnce.Do(func() {
		mc := o.cfg.MinIO
		if mc.Endpoint == "" {
			o.minioErr = fmt.Errorf("minio endpoint not configured")
			return
		}
		o.minio, o.minioErr = minio.New(mc.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
			Secure: mc.UseSSL,
		})
	})
	return o.minio, o.minioErr
}
