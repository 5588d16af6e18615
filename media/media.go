// Package media stores product and profile images in a MinIO-compatible
// object store and hands back the public URL plus the object key needed to
// delete the asset later.
package media

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MasterGroupNew/Luxeparfum-Backend/config"
)

type Client struct {
	mc      *minio.Client
	bucket  string
	baseURL string
}

// NewClient builds the object-storage client. Returns (nil, nil) when no
// endpoint is configured: the API then runs without image uploads.
func NewClient(cfg config.Config) (*Client, error) {
	if cfg.MediaEndpoint == "" {
		return nil, nil
	}

	mc, err := minio.New(cfg.MediaEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		Secure: cfg.MediaUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create media client: %w", err)
	}

	baseURL := cfg.MediaBaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.MediaUseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.MediaEndpoint, cfg.MediaBucket)
	}

	return &Client{mc: mc, bucket: cfg.MediaBucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// EnsureBucket creates the bucket on first run.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// Upload stores one multipart image under folder and returns its public URL
// and object key.
func (c *Client) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (url, key string, err error) {
	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key = fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := c.mc.PutObject(ctx, c.bucket, key, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", "", fmt.Errorf("upload %s: %w", key, err)
	}

	return c.baseURL + "/" + key, key, nil
}

// Delete removes one object.
func (c *Client) Delete(ctx context.Context, key string) error {
	return c.mc.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
}

// DeleteAsync removes an object in the background. Replacing or deleting a
// record must not fail because its old image could not be removed, so this
// retries a few times and then only logs.
func (c *Client) DeleteAsync(key string) {
	if key == "" {
		return
	}
	go func() {
		for attempt := 1; attempt <= 3; attempt++ {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := c.Delete(ctx, key)
			cancel()
			if err == nil {
				return
			}
			if attempt == 3 {
				log.Printf("media: failed to delete %s after %d attempts: %v", key, attempt, err)
				return
			}
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}()
}
