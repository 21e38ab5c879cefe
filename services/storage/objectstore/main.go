package objectstore

import (
	"context"
	"fmt"
	"io"

	"gavin/api/models"
	"gavin/api/services/storage"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

/*
	FileStore adapter for an S3-compatible object store (MinIO).
	All blobs live in a single configured bucket, keyed by id.
*/
type FileStore struct {
	Client *minio.Client
	Bucket string
}

func NewFileStore(cfg *models.Config) (*FileStore, error) {
	client, err := minio.New(cfg.ObjectStore.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ObjectStore.AccessKey, cfg.ObjectStore.SecretKey, ""),
		Secure: cfg.ObjectStore.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating object store client: %s", err)
	}

	fs := &FileStore{
		Client: client,
		Bucket: cfg.ObjectStore.Bucket,
	}

	if err := fs.ensureBucket(context.Background()); err != nil {
		return nil, err
	}

	return fs, nil
}

func (fs *FileStore) ensureBucket(ctx context.Context) error {
	exists, err := fs.Client.BucketExists(ctx, fs.Bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket %s: %s", fs.Bucket, err)
	}
	if exists {
		return nil
	}

	return fs.Client.MakeBucket(ctx, fs.Bucket, minio.MakeBucketOptions{})
}

func (fs *FileStore) Store(id string, contents io.Reader) (int64, error) {
	info, err := fs.Client.PutObject(
		context.Background(), fs.Bucket, id, contents, -1, minio.PutObjectOptions{
			ContentType: "application/octet-stream",
		})
	if err != nil {
		return 0, err
	}

	return info.Size, nil
}

func (fs *FileStore) Open(id string) (io.ReadCloser, error) {
	obj, err := fs.Client.GetObject(context.Background(), fs.Bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy; stat to surface missing keys right away
	if _, statErr := obj.Stat(); statErr != nil {
		obj.Close()
		if minio.ToErrorResponse(statErr).Code == "NoSuchKey" {
			return nil, storage.ErrFileNotFound
		}
		return nil, statErr
	}

	return obj, nil
}

func (fs *FileStore) Delete(id string) error {
	return fs.Client.RemoveObject(context.Background(), fs.Bucket, id, minio.RemoveObjectOptions{})
}
