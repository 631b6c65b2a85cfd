// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small interface the profile backup needs,
// so S3 and self-hosted MinIO work the same way and tests can use core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: verify or create the backup bucket.
//   - PutObject / GetObject: upload and download profile files.
//   - ListObjects: enumerate a profile's backup (supports prefix/recursive).
//   - RemoveObjects: delete a profile's backup in one batch.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
