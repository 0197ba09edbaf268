// Package minio implements the transfer capability on top of a MinIO (or
// any S3-compatible) bucket. Objects are content-addressed: the key is
// the hex SHA-256 of the file, which doubles as the returned hash.
package minio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/minio/minio-go/v7"
	"github.com/oklog/ulid/v2"

	"github.com/socialx/socialx-go/internal/transfer"
)

// minioAPI is the slice of *minio.Client the transfer needs; an interface
// so tests can run without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

var _ transfer.Transfer = (*Client)(nil)

// Client uploads files into a single bucket.
type Client struct {
	api    minioAPI
	bucket string
}

// NewClient wraps a real *minio.Client.
func NewClient(ctx context.Context, client *minio.Client, bucket string) (*Client, error) {
	return NewClientWithAPI(ctx, minioClientWrapper{c: client}, bucket)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket string) (*Client, error) {
	c := &Client{api: api, bucket: bucket}
	if err := c.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}
	return c, nil
}

func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Upload hashes the file, streams it into the bucket under its hash, and
// returns an IPFS-add-shaped response body.
func (c *Client) Upload(ctx context.Context, localPath string, onStart transfer.StartFunc, onProgress transfer.ProgressFunc) (*transfer.Result, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("failed to hash file: %w", err)
	}
	hash := hex.EncodeToString(h.Sum(nil))

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	uploadID := ulid.Make().String()
	if onStart != nil {
		onStart(uploadID)
	}

	reader := transfer.NewProgressReader(f, info.Size(), uploadID, onProgress)
	if _, err := c.api.PutObject(ctx, c.bucket, hash, reader, info.Size(), minio.PutObjectOptions{}); err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	body, err := json.Marshal(transfer.AddResponse{
		Name: filepath.Base(localPath),
		Hash: hash,
		Size: strconv.FormatInt(info.Size(), 10),
	})
	if err != nil {
		return nil, err
	}
	return &transfer.Result{UploadID: uploadID, ResponseBody: body}, nil
}
