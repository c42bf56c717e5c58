package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// S3Config holds the connection settings for an S3-compatible bucket
type S3Config struct {
	Endpoint  string // Empty for AWS itself
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Prefix    string // Key prefix, e.g. "renders/"
}

// Enabled reports whether enough settings are present to upload
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// ObjectPutter is the part of the S3 client used for uploads
type ObjectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Uploader uploads rendered images to a bucket
type S3Uploader struct {
	client ObjectPutter
	config S3Config
	logger core.Logger
}

// NewS3Uploader creates an uploader with a session for the configured endpoint
func NewS3Uploader(config S3Config, logger core.Logger) (*S3Uploader, error) {
	if !config.Enabled() {
		return nil, errors.New("S3 bucket is not configured")
	}

	awsConfig := &aws.Config{
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(config.Endpoint != ""),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3UploaderWithClient(s3.New(sess), config, logger), nil
}

// NewS3UploaderWithClient creates an uploader around an existing client
func NewS3UploaderWithClient(client ObjectPutter, config S3Config, logger core.Logger) *S3Uploader {
	return &S3Uploader{client: client, config: config, logger: logger}
}

// Key returns the object key used for a local file name
func (u *S3Uploader) Key(name string) string {
	return path.Join(u.config.Prefix, filepath.Base(name))
}

// Upload stores data under key, with the content type taken from the key's extension
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ContentType(filepath.Ext(key))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if u.logger != nil {
		u.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, u.config.Bucket, size)
	}
	return nil
}

// UploadImage encodes the image by the key's extension and uploads it
func (u *S3Uploader) UploadImage(ctx context.Context, key string, img *renderer.Image) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, filepath.Ext(key)); err != nil {
		return err
	}
	return u.Upload(ctx, key, buf.Bytes())
}
