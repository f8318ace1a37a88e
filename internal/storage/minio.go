package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const imageBucket = "contest-images"

// ImageStore keeps contest images in a MinIO bucket and hands back the
// public URL that gets stored on the contest document.
type ImageStore struct {
	client   *minio.Client
	endpoint string
	useSSL   bool
}

func NewImageStore(endpoint, accessKey, secretKey string, useSSL bool) (*ImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, imageBucket)
	if err != nil {
		log.Printf("Warning: Failed to check bucket existence: %v", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, imageBucket, minio.MakeBucketOptions{}); err != nil {
			log.Printf("Warning: Failed to create bucket: %v", err)
		} else {
			log.Printf("Created bucket: %s", imageBucket)
		}
	}

	return &ImageStore{client: client, endpoint: endpoint, useSSL: useSSL}, nil
}

// Upload stores one image under a uuid-prefixed object name and returns
// its URL.
func (s *ImageStore) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	objectName := fmt.Sprintf("%s_%s", uuid.NewString(), filename)

	_, err := s.client.PutObject(ctx, imageBucket, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, imageBucket, objectName), nil
}
