// Package storage copies generated images into object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lumastory/lumastory/internal/shared/config"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

const (
	defaultFetchTimeout  = 10 * time.Second
	defaultUploadTimeout = 15 * time.Second
	maxAvatarBytes       = 10 << 20
)

// objectPutter is the part of *minio.Client the store uses.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioAvatarStore downloads a generated avatar and re-hosts it in a bucket.
// Any failure falls back to the provider URL.
type MinioAvatarStore struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
	httpClient    *http.Client
	fetchTimeout  time.Duration
	uploadTimeout time.Duration
	logger        logger.Interface
}

// NewMinioAvatarStore connects to MinIO and ensures the bucket exists.
func NewMinioAvatarStore(ctx context.Context, cfg config.StorageConfig, logger logger.Interface) (*MinioAvatarStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBaseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return newAvatarStore(client, cfg.Bucket, publicBaseURL, cfg.FetchTimeout, cfg.UploadTimeout, logger), nil
}

func newAvatarStore(client objectPutter, bucket, publicBaseURL string, fetchTimeout, uploadTimeout time.Duration, logger logger.Interface) *MinioAvatarStore {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	if uploadTimeout <= 0 {
		uploadTimeout = defaultUploadTimeout
	}
	return &MinioAvatarStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		httpClient:    &http.Client{},
		fetchTimeout:  fetchTimeout,
		uploadTimeout: uploadTimeout,
		logger:        logger,
	}
}

// Store returns the durable URL, or sourceURL when the copy fails.
func (s *MinioAvatarStore) Store(ctx context.Context, profileID, sourceURL string) string {
	data, contentType, err := s.fetch(ctx, sourceURL)
	if err != nil {
		s.logger.Warnw("avatar download failed, keeping provider url",
			"profile_id", profileID,
			"error", err,
		)
		return sourceURL
	}

	key := fmt.Sprintf("avatars/%s/%d%s", profileID, time.Now().UnixNano(), extensionFor(contentType))

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()
	_, err = s.client.PutObject(uploadCtx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.logger.Warnw("avatar upload failed, keeping provider url",
			"profile_id", profileID,
			"error", err,
		)
		return sourceURL
	}

	s.logger.Infow("avatar stored", "profile_id", profileID, "key", key, "size", len(data))
	return s.publicBaseURL + "/" + key
}

func (s *MinioAvatarStore) fetch(ctx context.Context, sourceURL string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAvatarBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image")
	}
	if len(data) > maxAvatarBytes {
		return nil, "", fmt.Errorf("image larger than %d bytes", maxAvatarBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("not an image: %s", contentType)
	}
	return data, contentType, nil
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch mediaType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	return ""
}
