// Package storage archives uploaded corneal images in an S3-compatible
// object store.
package storage

import (
	"bytes"
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ArtifactStore keeps raw uploaded images for later review. Losing an
// artifact never fails a diagnosis; callers treat uploads as best-effort.
type ArtifactStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// New connects to the object store and ensures the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool, logger *zap.Logger) (*ArtifactStore, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &ArtifactStore{client: cli, bucket: bucket, logger: logger.Named("artifact_store")}, nil
}

// Put uploads one image under the given object key.
func (s *ArtifactStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return err
	}
	s.logger.Debug("stored artifact", zap.String("object_key", key), zap.Int("bytes", len(data)))
	return nil
}
