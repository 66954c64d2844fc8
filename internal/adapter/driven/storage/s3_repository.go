package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/aws-external-assets-go/internal/domain/repository"
)

// S3API is the subset of the S3 client used to upload reports.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ClientProvider returns an S3 client for a profile. An empty region uses the profile's default.
type ClientProvider func(ctx context.Context, profile, region string) (S3API, error)

// S3RepositoryImpl implements StorageRepository on Amazon S3.
type S3RepositoryImpl struct {
	clients ClientProvider
}

// NewS3Repository creates a new StorageRepository.
func NewS3Repository(clients ClientProvider) repository.StorageRepository {
	return &S3RepositoryImpl{clients: clients}
}

// UploadReport copies a local report to s3://bucket/prefix<file name> and returns its URI.
func (r *S3RepositoryImpl) UploadReport(ctx context.Context, profile, localPath, bucket, prefix string) (string, error) {
	if bucket == "" {
		return "", fmt.Errorf("no S3 bucket configured")
	}

	client, err := r.clients(ctx, profile, "")
	if err != nil {
		return "", fmt.Errorf("error creating S3 client: %w", err)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening report %s: %w", localPath, err)
	}
	defer file.Close()

	key := objectKey(prefix, filepath.Base(localPath))
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType := mime.TypeByExtension(filepath.Ext(localPath)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("error uploading report to s3://%s/%s: %w", bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

func objectKey(prefix, name string) string {
	prefix = strings.TrimPrefix(prefix, "/")
	if prefix == "" {
		return name
	}
	if strings.HasSuffix(prefix, "/") {
		return prefix + name
	}
	return path.Join(prefix, name)
}
