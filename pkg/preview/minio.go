package preview

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/SmdhMdep/iot-status-api/pkg/common"
)

// MinioStore reads stream data objects from an S3 compatible bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore() (*MinioStore, error) {
	client, err := minio.New(os.Getenv(common.EnvKeyStreamDataEndpoint), &minio.Options{
		Creds: credentials.NewStaticV4(
			os.Getenv(common.EnvKeyStreamDataAccessKey),
			os.Getenv(common.EnvKeyStreamDataSecretKey),
			"",
		),
		Secure: os.Getenv(common.EnvKeyStreamDataUseSSL) == "true",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stream data client: %w", err)
	}
	return &MinioStore{
		client: client,
		bucket: os.Getenv(common.EnvKeyStreamDataBucket),
	}, nil
}

func (s *MinioStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return object, nil
}
