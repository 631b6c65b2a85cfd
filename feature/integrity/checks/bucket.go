package checks

import (
	"context"
	"errors"
	"fmt"

	"bg3-modsettings/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrBucketMissing is returned when the backup bucket does not exist.
var ErrBucketMissing = errors.New("bucket does not exist")

// CheckBucket verifies that the backup bucket is reachable and exists.
// It is skipped when no storage client is configured.
func CheckBucket(ctx context.Context, client storage.Client, bucket string) Result {
	if client == nil {
		return skipped(NameBucket, "storage disabled")
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return failed(NameBucket, fmt.Errorf("failed to check bucket existence: %w", err))
	}
	if !exists {
		return failed(NameBucket, fmt.Errorf("%w: %s", ErrBucketMissing, bucket))
	}
	return passed(NameBucket, bucket)
}

// FixBucket creates the backup bucket.
func FixBucket(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Created missing bucket", zap.String("bucket", bucket))
	return nil
}
