package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of the AWS S3 API the storage uses; narrowed
// for tests.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config configures S3 or S3-compatible artifact storage.
type S3Config struct {
	Bucket         string `env:"BLOB_S3_BUCKET"`
	Region         string `env:"BLOB_S3_REGION"`
	AccessKeyID    string `env:"BLOB_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"BLOB_S3_SECRET_KEY"`
	Endpoint       string `env:"BLOB_S3_ENDPOINT"`
	BaseURL        string `env:"BLOB_S3_BASE_URL"`
	ForcePathStyle bool   `env:"BLOB_S3_FORCE_PATH_STYLE" envDefault:"false"`

	UploadTimeout time.Duration `env:"BLOB_S3_UPLOAD_TIMEOUT" envDefault:"60s"`
}

// S3Storage implements Storage over S3. Safe for concurrent use.
type S3Storage struct {
	client        S3Client
	bucket        string
	baseURL       string
	uploadTimeout time.Duration
}

// S3Option configures S3Storage.
type S3Option func(*S3Storage)

// WithS3Client sets a pre-configured client, bypassing AWS config
// loading. Used in tests.
func WithS3Client(client S3Client) S3Option {
	return func(s *S3Storage) {
		s.client = client
	}
}

// NewS3Storage creates artifact storage over S3.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", ErrInvalidConfig)
	}

	storage := &S3Storage{
		bucket:        cfg.Bucket,
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		uploadTimeout: cfg.UploadTimeout,
	}
	for _, opt := range opts {
		opt(storage)
	}

	if storage.client == nil {
		awsOpts := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOpts = append(awsOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}

		awsCfg, err := config.LoadDefaultConfig(ctx, awsOpts...)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadConfig, err)
		}

		storage.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	if storage.baseURL == "" {
		storage.baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return storage, nil
}

// Upload implements Storage.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", classifyS3Error(ErrUploadFailed, err)
	}

	return s.baseURL + "/" + strings.TrimPrefix(key, "/"), nil
}

// Delete implements Storage.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return classifyS3Error(ErrDeleteFailed, err)
	}
	return nil
}

func classifyS3Error(sentinel, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDenied" {
		return errors.Join(sentinel, ErrAccessDenied, err)
	}
	return errors.Join(sentinel, err)
}
