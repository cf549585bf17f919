package filestorage

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Provider interface {
	Download(ctx context.Context, path string) ([]byte, error)
	Upload(ctx context.Context, path string, data []byte) error
	EnsureBucket(ctx context.Context) error
}

func NewProvider(s3client *minio.Client, bucketName string) Provider {
	return &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func (i impl) Download(ctx context.Context, path string) ([]byte, error) {
	obj, err := i.s3client.GetObject(ctx, i.bucketName, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Upload overwrites an existing object at the same path.
func (i impl) Upload(ctx context.Context, path string, data []byte) error {
	_, err := i.s3client.PutObject(ctx, i.bucketName, path, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return err
	}
	return nil
}

func (i impl) EnsureBucket(ctx context.Context) error {
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return errors.Wrap(err, "bucket check failed")
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
	if err != nil {
		return errors.Wrap(err, "bucket creation failed")
	}
	return nil
}
