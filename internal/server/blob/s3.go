// Package blob wraps the S3 API used to store uploaded file contents.
// Production deployments point it at any S3-compatible backend (MinIO,
// Tigris, AWS); tests use gofakes3.
package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ProviderName identifies this backend in file metadata rows.
const ProviderName = "s3"

// Store is the minimal object-storage surface the services need.
type Store interface {
	// Put stores body under key and returns the durable public URL.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	// Delete removes the object at key. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, key string) error
}

// Config holds the settings for creating an S3-backed Store.
type Config struct {
	// Endpoint is the S3 endpoint URL. Leave empty for default AWS S3.
	Endpoint string
	// Region is the bucket region ("us-east-1" for MinIO defaults).
	Region string
	// AccessKeyID / SecretAccessKey are static credentials (MINIO_ROOT_USER
	// / MINIO_ROOT_PASSWORD for a local MinIO).
	AccessKeyID     string
	SecretAccessKey string
	// Bucket is the bucket all objects are stored in.
	Bucket string
	// PublicURL is the base URL under which stored objects are reachable.
	PublicURL string
	// UsePathStyle enables path-style addressing (required for MinIO and
	// gofakes3).
	UsePathStyle bool
}

// S3Client implements Store on top of aws-sdk-go-v2.
type S3Client struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// New creates an S3Client from the given configuration.
func New(ctx context.Context, cfg Config) (*S3Client, error) {
	var opts []func(*awsconfig.LoadOptions) error

	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewFromS3Client(client, cfg.Bucket, cfg.PublicURL), nil
}

// NewFromS3Client wraps an existing S3 client. Used by tests to plug in a
// gofakes3-backed client.
func NewFromS3Client(client *s3.Client, bucket, publicURL string) *S3Client {
	return &S3Client{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (c *S3Client) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("blob put %q: %w", key, err)
	}

	return c.ObjectURL(key), nil
}

func (c *S3Client) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("blob delete %q: %w", key, err)
	}
	return nil
}

// ObjectURL returns the public URL of the object stored under key.
func (c *S3Client) ObjectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, key)
}
