// Package s3 handles object store access through the MinIO client.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hjemme/inventar/pkg/configs"
	nlog "github.com/hjemme/inventar/pkg/log"
)

// ErrObjectNotFound reports a missing object or bucket on read/delete.
var ErrObjectNotFound = errors.New("object not found")

// Client wraps the MinIO client. It is constructed once at startup from
// configuration and shared by all requests.
type Client struct {
	*minio.Client

	region string
}

// New builds the MinIO client. Buckets are not created here; they are created
// lazily on first write (EnsureBucket).
func New(ctx context.Context, cfg *configs.S3Config) (*Client, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL
	// Accept a full scheme endpoint (http:// or https://).
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			useSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("inventar", configs.AppVersion)

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("region", cfg.Region).Msg("s3 client ready")

	return &Client{Client: cli, region: cfg.Region}, nil
}

// EnsureBucket creates the bucket if it does not exist yet. Concurrent
// creation races are tolerated: already-exists answers are not errors.
func (c *Client) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}

	if exists {
		return nil
	}

	err = c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: c.region})
	if err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists" {
			return nil
		}

		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}

	nlog.Logger().Info().Str("bucket", bucket).Msg("bucket created")

	return nil
}

// PutBlob writes the bytes under bucket/key, creating the bucket lazily.
func (c *Client) PutBlob(ctx context.Context, bucket, key string, data []byte) error {
	if err := c.EnsureBucket(ctx, bucket); err != nil {
		return err
	}

	_, err := c.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}

	return nil
}

// GetBlob reads the bytes stored under bucket/key. A missing object or bucket
// yields ErrObjectNotFound.
func (c *Client) GetBlob(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := c.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == "NoSuchKey" || code == "NoSuchBucket" {
			return nil, fmt.Errorf("get object %s/%s: %w", bucket, key, ErrObjectNotFound)
		}

		return nil, fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}

	return data, nil
}

// RemoveBlob deletes the object under bucket/key. Removing a missing object is
// not an error (S3 delete semantics).
func (c *Client) RemoveBlob(ctx context.Context, bucket, key string) error {
	if err := c.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s/%s: %w", bucket, key, err)
	}

	return nil
}

// StatBlob reports whether an object exists under bucket/key.
func (c *Client) StatBlob(ctx context.Context, bucket, key string) (bool, error) {
	_, err := c.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == "NoSuchKey" || code == "NoSuchBucket" {
			return false, nil
		}

		return false, fmt.Errorf("stat object %s/%s: %w", bucket, key, err)
	}

	return true, nil
}

// HealthCheck verifies connectivity by listing buckets.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)
	return err
}
