package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/config"
	"github.com/wb-go/wbf/logger"
)

// MinioStore is the S3-compatible event-asset bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	public string
	logger logger.Logger
}

func NewMinio(cfg config.StorageConfig, log logger.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		public: fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
		logger: log,
	}, nil
}

func (s *MinioStore) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		keys = append(keys, obj.Key)
	}

	return keys, nil
}

func (s *MinioStore) RemoveKeys(ctx context.Context, keys []string) error {
	objects := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objects <- minio.ObjectInfo{Key: key}
	}
	close(objects)

	var firstErr error
	for res := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		if res.Err != nil && firstErr == nil {
			firstErr = fmt.Errorf("remove object %s: %w", res.ObjectName, res.Err)
		}
	}

	return firstErr
}

func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return s.public + "/" + key, nil
}

func (s *MinioStore) ExtractKey(rawURL string) (string, bool) {
	return KeyFromURL(s.bucket, rawURL)
}
