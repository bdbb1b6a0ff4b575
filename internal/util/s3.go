package util

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
)

const PresignedURLExpiry = 24 * time.Hour

func GetExportDirectoryPath(collegeId string) string {
	return fmt.Sprintf("colleges/%s/exports", collegeId)
}

func GetAssetDirectoryPath(collegeId string) string {
	return fmt.Sprintf("colleges/%s/assets", collegeId)
}

func createBucketIfNotExists(ctx context.Context, s3 *minio.Client, bucketName string) error {
	exists, err := s3.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}

	if !exists {
		err = s3.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}

type FileUploadOptions struct {
	// Add a prefix to the file name
	// For example, if the file name is "data.csv" and the prefix is "colleges/123/exports",
	// the resulting name will be "colleges/123/exports/data.csv"
	DirectoryPath string
	UniquePrefix  bool
	Bucket        string
	S3            *minio.Client
}

// UploadBytesToS3 stores data and returns the object name it was stored under.
func UploadBytesToS3(ctx context.Context, data []byte, fileName, contentType string, fuo *FileUploadOptions) (string, error) {
	if err := createBucketIfNotExists(ctx, fuo.S3, fuo.Bucket); err != nil {
		return "", fmt.Errorf("failed to create bucket: %w", err)
	}

	objectName := prepareFileName(fileName, fuo)

	_, err := fuo.S3.PutObject(
		ctx,
		fuo.Bucket,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return objectName, nil
}

// PresignedDownloadURL returns a time limited link that downloads the object as fileName.
func PresignedDownloadURL(ctx context.Context, s3 *minio.Client, bucket, objectName, fileName string) (*url.URL, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	u, err := s3.PresignedGetObject(ctx, bucket, objectName, PresignedURLExpiry, params)
	if err != nil {
		return nil, fmt.Errorf("failed to presign object: %w", err)
	}
	return u, nil
}

// Generates the final object name with uniqueness and prefix
func prepareFileName(originalName string, fuo *FileUploadOptions) string {
	fileName := path.Base(originalName)

	if fuo != nil {
		if fuo.UniquePrefix {
			fileName = AddUniquePrefixToFileName(fileName)
		}

		if fuo.DirectoryPath != "" {
			fileName = path.Join(fuo.DirectoryPath, fileName)
		}
	}

	return fileName
}
