package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/hirely/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// API is the subset of the S3 client used here
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3FileSystem stores files as objects under bucket/prefix
type S3FileSystem struct {
	client API
	bucket string
	prefix string
}

var _ fsx.FileSystem = (*S3FileSystem)(nil)

func NewS3FileSystem(client API, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (f *S3FileSystem) key(name string) string {
	name = strings.TrimPrefix(name, "/")
	if f.prefix == "" {
		return name
	}
	return f.prefix + "/" + name
}

func (f *S3FileSystem) Join(elem ...string) string {
	return strings.TrimPrefix(path.Join(elem...), "/")
}

func (f *S3FileSystem) WriteFile(ctx context.Context, name string, data []byte) error {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.bucket),
		Key:         aws.String(f.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(name)),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", name, err)
	}
	return nil
}

func (f *S3FileSystem) WriteFileStream(ctx context.Context, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stream for %s: %w", name, err)
	}
	return f.WriteFile(ctx, name, data)
}

func (f *S3FileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	body, err := f.ReadFileStream(ctx, name)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (f *S3FileSystem) ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fsx.ErrNotExist
		}
		return nil, fmt.Errorf("get object %s: %w", name, err)
	}
	return out.Body, nil
}

func (f *S3FileSystem) DeleteFile(ctx context.Context, name string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", name, err)
	}
	return nil
}

func (f *S3FileSystem) Exists(ctx context.Context, name string) (bool, error) {
	_, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s: %w", name, err)
	}
	return true, nil
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
