package storage

import (
	"context"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectAPI is the subset of *minio.Client used here.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	ComposeObject(ctx context.Context, dst minio.CopyDestOptions, srcs ...minio.CopySrcOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinIOClient implements slurp.ObjectStorage using MinIO.
type MinIOClient struct {
	client     objectAPI
	bucketName string
}

// MinIOConfig holds MinIO connection settings.
type MinIOConfig struct {
	Endpoint  string // e.g., "localhost:9000"
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinIOClient creates a new MinIO storage client, creating the bucket
// when it does not exist yet.
func NewMinIOClient(ctx context.Context, cfg MinIOConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return newMinIOClient(ctx, client, cfg.Bucket)
}

func newMinIOClient(ctx context.Context, client objectAPI, bucket string) (*MinIOClient, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOClient{
		client:     client,
		bucketName: bucket,
	}, nil
}

// Put uploads size bytes from reader under key. size may be -1 when unknown.
func (m *MinIOClient) Put(ctx context.Context, key string, reader io.Reader, size int64) error {
	_, err := m.client.PutObject(ctx, m.bucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to minio: %w", key, err)
	}
	return nil
}

// Size returns the stored length of key.
func (m *MinIOClient) Size(ctx context.Context, key string) (int64, error) {
	info, err := m.client.StatObject(ctx, m.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return info.Size, nil
}

// CRC32 reads key back and returns its IEEE CRC-32.
func (m *MinIOClient) CRC32(ctx context.Context, key string) (uint32, error) {
	obj, err := m.client.GetObject(ctx, m.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", key, err)
	}
	defer obj.Close()

	h := crc32.NewIEEE()
	if _, err := io.Copy(h, obj); err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return h.Sum32(), nil
}

// Move copies from to to server-side and removes from. An existing object at
// to is overwritten. ComposeObject copies in parts, so sources above the
// 5 GiB single-copy limit are handled.
func (m *MinIOClient) Move(ctx context.Context, from, to string) error {
	_, err := m.client.ComposeObject(ctx,
		minio.CopyDestOptions{Bucket: m.bucketName, Object: to},
		minio.CopySrcOptions{Bucket: m.bucketName, Object: from},
	)
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", from, to, err)
	}

	if err := m.client.RemoveObject(ctx, m.bucketName, from, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove staging object %s: %w", from, err)
	}
	return nil
}

// Remove deletes key. Used to clean up a staging object after a failure.
func (m *MinIOClient) Remove(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
