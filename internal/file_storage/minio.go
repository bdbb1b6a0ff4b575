package filestorage

import (
	"context"
	"fmt"

	"github.com/SeakMengs/certgen/internal/config"
	"github.com/SeakMengs/certgen/internal/util"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage is what request handlers need from the object store.
type ObjectStorage interface {
	Put(ctx context.Context, dir, fileName, contentType string, data []byte) (string, error)
	DownloadURL(ctx context.Context, objectName, fileName string) (string, error)
}

func NewMinioClient(cfg config.MinioConfig) (*minio.Client, error) {
	return minio.New(cfg.ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ACCESS_KEY, cfg.SECRET_KEY, ""),
		Secure: cfg.USE_SSL,
		Region: "us-east-1",
	})
}

// MinioStorage stores every object in one bucket.
type MinioStorage struct {
	S3     *minio.Client
	Bucket string
}

func NewMinioStorage(cfg config.MinioConfig) (*MinioStorage, error) {
	if cfg.ACCESS_KEY == "" || cfg.SECRET_KEY == "" {
		return nil, fmt.Errorf("minio credentials are not configured")
	}

	client, err := NewMinioClient(cfg)
	if err != nil {
		return nil, err
	}
	return &MinioStorage{S3: client, Bucket: cfg.BUCKET}, nil
}

func (s *MinioStorage) Put(ctx context.Context, dir, fileName, contentType string, data []byte) (string, error) {
	return util.UploadBytesToS3(ctx, data, fileName, contentType, &util.FileUploadOptions{
		DirectoryPath: dir,
		UniquePrefix:  true,
		Bucket:        s.Bucket,
		S3:            s.S3,
	})
}

func (s *MinioStorage) DownloadURL(ctx context.Context, objectName, fileName string) (string, error) {
	u, err := util.PresignedDownloadURL(ctx, s.S3, s.Bucket, objectName, fileName)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
