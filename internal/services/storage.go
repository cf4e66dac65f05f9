package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"orchard_back_end/internal/config"
	"orchard_back_end/internal/database"
)

// UploadProductImage streams a multipart upload into the image bucket and
// returns its public URL. Object names are random so uploads never collide.
func UploadProductImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("products/%s%s", uuid.NewString(), ext)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	bucket := config.Get("MINIO_BUCKET", "orchard-images")
	_, err = database.MinIO.PutObject(ctx, bucket, objectName, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return publicImageURL(bucket, objectName), nil
}

func publicImageURL(bucket, objectName string) string {
	base := config.Get("MINIO_PUBLIC_URL", "")
	if base == "" {
		scheme := "http"
		if config.Get("MINIO_USE_SSL", "false") == "true" {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, config.Get("MINIO_ENDPOINT", "localhost:9000"))
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, objectName)
}

// PresignedImageURL returns a temporary download link for a stored object.
func PresignedImageURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	bucket := config.Get("MINIO_BUCKET", "orchard-images")
	u, err := database.MinIO.PresignedGetObject(ctx, bucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign image url: %w", err)
	}
	return u.String(), nil
}
