// Package storage archives finished artifacts to an S3-compatible bucket.
// The archive is optional and failures are warnings, never job failures.
package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"video2md/internal/config"
)

// Archiver uploads files to the configured bucket, keyed by job title.
type Archiver struct {
	client *minio.Client
	bucket string
	log    *zap.SugaredLogger
}

// NewArchiver builds the MinIO client. Returns nil when archiving is
// disabled so callers can skip the stage entirely.
func NewArchiver(settings config.StorageSettings, keys *config.APIKeys, log *zap.SugaredLogger) (*Archiver, error) {
	if !settings.Enabled {
		return nil, nil
	}
	if settings.Endpoint == "" || settings.Bucket == "" {
		return nil, fmt.Errorf("storage enabled but endpoint or bucket not configured")
	}

	client, err := minio.New(settings.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(keys.MinioAccessKey, keys.MinioSecretKey, ""),
		Secure: settings.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &Archiver{client: client, bucket: settings.Bucket, log: log}, nil
}

// Archive uploads localPaths under <title>/<basename> in the bucket,
// creating the bucket on first use.
func (a *Archiver) Archive(ctx context.Context, title string, localPaths []string) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", a.bucket, err)
		}
	}

	for _, localPath := range localPaths {
		objectName := path.Join(title, filepath.Base(localPath))
		if _, err := a.client.FPutObject(ctx, a.bucket, objectName, localPath, minio.PutObjectOptions{}); err != nil {
			return fmt.Errorf("upload %s: %w", objectName, err)
		}
		a.log.Infow("artifact archived", "bucket", a.bucket, "object", objectName)
	}
	return nil
}
