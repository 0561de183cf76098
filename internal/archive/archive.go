// Package archive uploads report artifacts to an S3-compatible bucket
// for long-term retention. Archiving is optional and best-effort: the
// caller records a failed upload as a file-level error.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"remedian/internal/config"
)

// Uploader writes report artifacts to one bucket.
type Uploader struct {
	client *minio.Client
	bucket string
	prefix string
}

// New returns an Uploader for the configured bucket.
func New(cfg config.Archive) (*Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("archive: create client: %w", err)
	}
	return &Uploader{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Upload stores data under objectName in the configured bucket.
func (u *Uploader) Upload(ctx context.Context, objectName string, data []byte) error {
	name := objectName
	if u.prefix != "" {
		name = path.Join(u.prefix, objectName)
	}

	_, err := u.client.PutObject(ctx, u.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("archive: upload %s: %w", name, err)
	}
	return nil
}
