package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

type memBucket struct {
	objects     map[string][]byte
	contentType string
	ShouldFail  bool
}

func (m *memBucket) PutObject(_ context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if m.ShouldFail {
		return minio.UploadInfo{}, errors.New("bucket unreachable")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	m.objects[key] = b
	m.contentType = opts.ContentType
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func TestMinioExporter_Export(t *testing.T) {
	bucket := &memBucket{objects: map[string][]byte{}}
	exp := &MinioExporter{client: bucket, bucket: "archived-users"}

	archived := &entity.ArchivedUser{
		ID:         "u1",
		DeletedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		ApprovedBy: "admin",
		ArchivedData: entity.ArchiveSnapshot{
			"jobs": {{"_id": "j1", "employer_id": "u1"}},
		},
	}
	key, err := exp.Export(context.Background(), archived)
	require.NoError(t, err)
	assert.Equal(t, "archived-users/u1.json", key)
	assert.Equal(t, "application/json", bucket.contentType)

	var got entity.ArchivedUser
	require.NoError(t, json.Unmarshal(bucket.objects[key], &got))
	assert.Equal(t, "admin", got.ApprovedBy)
	assert.Equal(t, 1, got.ArchivedData.Count("jobs"))
}

func TestMinioExporter_ExportFailure(t *testing.T) {
	exp := &MinioExporter{client: &memBucket{ShouldFail: true}, bucket: "b"}
	_, err := exp.Export(context.Background(), &entity.ArchivedUser{ID: "u1"})
	assert.Error(t, err)
}

func TestNewMinioExporter_RequiresEndpoint(t *testing.T) {
	_, err := NewMinioExporter(context.Background(), "", "k", "s", "b", false)
	assert.Error(t, err)
}
