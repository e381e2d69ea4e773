package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"s2x/internal/config"
)

// PresignExpiry is how long an uploaded object's GET URL stays valid.
const PresignExpiry = time.Hour

// UploadResult describes an object put into the bucket.
type UploadResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	SHA256    string    `json:"sha256"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Uploader puts local audio files into a MinIO/S3 bucket and hands back a
// presigned URL the transcription service can fetch.
type Uploader struct {
	client *minio.Client
	bucket string
}

// New creates an uploader from cfg. No network call is made.
func New(cfg config.StorageConfig) (*Uploader, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is not configured")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return &Uploader{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the bucket when it does not exist.
func (u *Uploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores the file at localPath and presigns a GET URL for it.
func (u *Uploader) Upload(ctx context.Context, localPath string) (*UploadResult, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", localPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", localPath)
	}

	sum, err := fileHash(f)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", localPath, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind %s: %w", localPath, err)
	}

	now := time.Now()
	key := ObjectKey(now, localPath)
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, u.bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": filepath.Base(localPath),
			"uploaded-at":   now.UTC().Format(time.RFC3339),
			"sha256":        sum,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to MinIO: %w", err)
	}

	presigned, err := u.client.PresignedGetObject(ctx, u.bucket, key, url.Values{}, PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &UploadResult{
		Key:       key,
		URL:       presigned.String(),
		Size:      info.Size(),
		SHA256:    sum,
		ExpiresAt: now.Add(PresignExpiry),
	}, nil
}

// ObjectKey returns audio/<year>/<uuid><ext> for filename.
func ObjectKey(now time.Time, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("audio/%04d/%s%s", now.Year(), uuid.NewString(), ext)
}

// fileHash returns the hex SHA-256 of everything left in r.
func fileHash(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
