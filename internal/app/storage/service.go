package storage

import (
	"context"
	"time"
)

// PresignedURLDuration is the fixed validity window for issued upload URLs.
const PresignedURLDuration = 5 * time.Minute

// ServiceConfig holds the configuration required to connect to the storage backend.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// S3PublicBaseURL, when set, is the base public address files are served
	// from (e.g. a CDN). Otherwise the path-style endpoint address is used.
	S3PublicBaseURL string
}

// StorageService is the backend behind the self-hosted presign endpoint.
type StorageService interface {
	// PresignUpload generates a pre-signed URL for uploading a file with the
	// given object key and MIME type.
	PresignUpload(ctx context.Context, key string, mimeType string, duration time.Duration) (string, error)

	// PublicURL returns the public address the object will be served from
	// once uploaded.
	PublicURL(key string) string

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error
}

// NewStorageService is the factory function for StorageService.
// It initializes and returns a concrete implementation based on the provided configuration.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	// Currently, only S3 compatible implementations are supported.
	return newS3Client(cfg)
}
