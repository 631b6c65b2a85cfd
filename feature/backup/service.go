package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"bg3-modsettings/core/storage"
	"bg3-modsettings/core/utils"
	"bg3-modsettings/feature/modsettings/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Files are the profile files that are backed up, in transfer order.
var Files = []string{models.ModSettingsFile, models.ModsCacheFile}

// Report describes one push or pull.
type Report struct {
	Profile     string   `json:"profile"`
	Transferred []string `json:"transferred"`
	// Skipped lists local files that did not exist on push.
	Skipped []string `json:"skipped"`
	// Missing lists remote objects that did not exist on pull.
	Missing []string `json:"missing"`
}

// Object is one stored backup file.
type Object struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// Service transfers profile files to and from a bucket.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewService creates a new backup service.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// ObjectKey returns the key file is stored under for profile.
func (s *Service) ObjectKey(profile, file string) string {
	return path.Join(s.prefix, profile, file)
}

// EnsureBucket creates the bucket when it does not exist.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Created backup bucket", zap.String("bucket", s.bucket))
	return nil
}

// Push uploads the profile files found in dir.
func (s *Service) Push(ctx context.Context, profile, dir string) (*Report, error) {
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	report := &Report{Profile: profile}
	for _, name := range Files {
		uploaded, err := s.pushFile(ctx, profile, filepath.Join(dir, name), name)
		if err != nil {
			return report, err
		}
		if uploaded {
			report.Transferred = append(report.Transferred, name)
		} else {
			report.Skipped = append(report.Skipped, name)
		}
	}

	s.logger.Info("Profile backed up",
		zap.String("profile", profile),
		zap.Strings("transferred", report.Transferred),
		zap.Strings("skipped", report.Skipped),
	)
	return report, nil
}

func (s *Service) pushFile(ctx context.Context, profile, localPath, name string) (bool, error) {
	f, err := os.Open(utils.LongPath(localPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.ObjectKey(profile, name), f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return false, fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return true, nil
}

// Pull downloads the profile files into dir, replacing local copies atomically.
func (s *Service) Pull(ctx context.Context, profile, dir string) (*Report, error) {
	report := &Report{Profile: profile}
	for _, name := range Files {
		data, err := s.fetch(ctx, s.ObjectKey(profile, name))
		if err != nil {
			if storage.IsNotFound(err) {
				report.Missing = append(report.Missing, name)
				continue
			}
			return report, fmt.Errorf("failed to download %s: %w", name, err)
		}
		if err := utils.WriteFileAtomic(utils.LongPath(filepath.Join(dir, name)), data, 0o644); err != nil {
			return report, fmt.Errorf("failed to restore %s: %w", name, err)
		}
		report.Transferred = append(report.Transferred, name)
	}

	s.logger.Info("Profile restored",
		zap.String("profile", profile),
		zap.Strings("transferred", report.Transferred),
		zap.Strings("missing", report.Missing),
	)
	return report, nil
}

func (s *Service) fetch(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

// List returns the stored objects of profile.
func (s *Service) List(ctx context.Context, profile string) ([]Object, error) {
	var objects []Object
	opts := minio.ListObjectsOptions{Prefix: path.Join(s.prefix, profile) + "/", Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list backup of %s: %w", profile, obj.Err)
		}
		objects = append(objects, Object{Key: obj.Key, Size: obj.Size})
	}
	return objects, nil
}

// Delete removes every stored object of profile and returns how many were removed.
func (s *Service) Delete(ctx context.Context, profile string) (int, error) {
	objects, err := s.List(ctx, profile)
	if err != nil {
		return 0, err
	}

	objectsCh := make(chan minio.ObjectInfo, len(objects))
	for _, o := range objects {
		objectsCh <- minio.ObjectInfo{Key: o.Key}
	}
	close(objectsCh)

	var firstErr error
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to delete %s: %w", rErr.ObjectName, rErr.Err)
		}
	}
	if firstErr != nil {
		return 0, firstErr
	}
	return len(objects), nil
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "application/json"
	case ".lsx":
		return "application/xml"
	default:
		return "application/octet-stream"
	}
}
