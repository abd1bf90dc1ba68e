// Package storage provides a domain-agnostic interface for S3-compatible
// object storage, used as the artifact store for prerendered quote documents.
package storage

import (
	"context"
	"io"
)

// Service defines the object storage operations the application needs.
// Objects are addressed by a fixed key so prerendered documents can be
// overwritten in place when their quote changes.
type Service interface {
	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error

	// PutObject uploads an object, replacing any existing one under the key.
	PutObject(ctx context.Context, bucket, key, contentType string, reader io.Reader, size int64) error

	// GetObject downloads an object. The caller must close the returned
	// reader. A missing object surfaces as an error on first read.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)

	// DeleteObject removes an object. Deleting a missing object is not an error.
	DeleteObject(ctx context.Context, bucket, key string) error

	// StatObject reports whether an object exists under the key.
	StatObject(ctx context.Context, bucket, key string) (bool, error)
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	IsMinIOEnabled() bool
}
