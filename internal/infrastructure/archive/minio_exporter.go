package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// objectPutter is the part of *minio.Client used by the exporter.
type objectPutter interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioExporter writes archived snapshots as JSON objects, one per user.
type MinioExporter struct {
	client objectPutter
	bucket string
}

var _ contract.IArchiveExporter = (*MinioExporter)(nil)

// NewMinioExporter connects to endpoint and makes sure bucket exists.
func NewMinioExporter(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioExporter, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("minio bucket is required")
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}
	return &MinioExporter{client: client, bucket: bucket}, nil
}

func objectKey(userID string) string {
	return fmt.Sprintf("archived-users/%s.json", userID)
}

// Export uploads the snapshot and returns its object key. Re-exporting the
// same user overwrites the object with identical content.
func (e *MinioExporter) Export(ctx context.Context, archived *entity.ArchivedUser) (string, error) {
	data, err := json.Marshal(archived)
	if err != nil {
		return "", fmt.Errorf("marshal archive %s: %w", archived.ID, err)
	}
	key := objectKey(archived.ID)
	_, err = e.client.PutObject(ctx, e.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", err
	}
	return key, nil
}
