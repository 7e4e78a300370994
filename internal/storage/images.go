// Package storage uploads and reclaims property images on MinIO. Uploads
// return public URLs that go straight into a listing's images column; deletes
// derive the object key back from the URL's last path segment.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"imovel-service/pkg/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ImageStorage wraps the MinIO client for the property-images bucket
type ImageStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewImageStorage connects to MinIO and ensures the bucket exists
func NewImageStorage(cfg *config.StorageConfig, log *zap.Logger) (*ImageStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	err = client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, existsErr := client.BucketExists(context.Background(), cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &ImageStorage{client: client, bucket: cfg.Bucket, logger: log}, nil
}

// Upload streams one image into the bucket under a unique key and returns
// its public URL.
func (s *ImageStorage) Upload(ctx context.Context, originalFileName string, contentType string, size int64, r io.Reader) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := uuid.New().String() + ext

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("Image uploaded",
		zap.String("bucket", s.bucket),
		zap.String("object_key", objectKey),
		zap.Int64("size_bytes", size))
	return url, nil
}

// DeleteByURL removes the object an image URL points at
func (s *ImageStorage) DeleteByURL(ctx context.Context, imageURL string) error {
	objectKey := ObjectKeyFromURL(imageURL)
	if objectKey == "" {
		return fmt.Errorf("cannot derive object key from url %q", imageURL)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s from bucket %s: %w", objectKey, s.bucket, err)
	}
	return nil
}

// DeleteAll reclaims every image of a listing, logging failures without
// stopping. Rows are the source of truth; a leaked object is only noise.
func (s *ImageStorage) DeleteAll(ctx context.Context, imageURLs []string) {
	for _, url := range imageURLs {
		if err := s.DeleteByURL(ctx, url); err != nil {
			s.logger.Warn("Failed to reclaim property image", zap.String("url", url), zap.Error(err))
		}
	}
}

// ObjectKeyFromURL returns the object key for an image URL, assuming the
// file name is the last path segment.
func ObjectKeyFromURL(imageURL string) string {
	idx := strings.LastIndex(imageURL, "/")
	if idx < 0 {
		return ""
	}
	return imageURL[idx+1:]
}
