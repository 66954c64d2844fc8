package repository

import "context"

// StorageRepository uploads finished reports to remote storage.
type StorageRepository interface {
	UploadReport(ctx context.Context, profile, localPath, bucket, prefix string) (string, error)
}
