package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"spaceHub/configs"
)

type MinioService struct {
	minioClient *minio.Client
	config      *configs.Config
	bucketName  string
}

// NewMinioService connects to the configured endpoint and makes sure the documents
// bucket exists.
func NewMinioService(ctx context.Context, config *configs.Config) (*MinioService, error) {
	endpoint := config.Viper.GetString("storage.minio.endpoint")
	accessKeyID := config.Viper.GetString("storage.minio.access_key_id")
	secretAccessKey := config.Viper.GetString("storage.minio.secret_access_key")
	useSSL := config.Viper.GetBool("storage.minio.use_ssl")
	bucketName := config.Viper.GetString("storage.minio.bucket")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	err = minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := minioClient.BucketExists(ctx, bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("minio bucket %s: %w", bucketName, err)
		}
		slog.Info("minio bucket already exists", "bucket", bucketName)
	} else {
		slog.Info("minio bucket created", "bucket", bucketName)
	}

	return &MinioService{
		minioClient: minioClient,
		config:      config,
		bucketName:  bucketName,
	}, nil
}

func (ms *MinioService) UploadFile(ctx context.Context, key string, file io.Reader, fileSize int64, contentType string) (string, error) {
	info, err := ms.minioClient.PutObject(ctx, ms.bucketName, key, file, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		slog.ErrorContext(ctx, "minio put object failed", "key", key, "error", err)
		return "", err
	}
	return ms.GetPublicFileUrl(info.Key), nil
}

func (ms *MinioService) DeleteFile(ctx context.Context, key string) error {
	return ms.minioClient.RemoveObject(ctx, ms.bucketName, key, minio.RemoveObjectOptions{})
}

func (ms *MinioService) GetPublicFileUrl(fileKey string) string {
	externalEndpoint := ms.config.Viper.GetString("storage.minio.external_endpoint")
	if externalEndpoint == "" {
		externalEndpoint = ms.config.Viper.GetString("storage.minio.endpoint")
	}
	scheme := "http"
	if ms.config.Viper.GetBool("storage.minio.use_ssl") {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, externalEndpoint, ms.bucketName, fileKey)
}
