package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/udagram/feed-api/internal/metrics"
	"github.com/udagram/feed-api/internal/telemetry"
)

// S3Options configures an S3Signer
type S3Options struct {
	Region string
	Bucket string
	// Profile selects a shared-config profile (optional)
	Profile string
	// Endpoint points at an S3-compatible service such as MinIO (optional)
	Endpoint string
	// Expiry is how long signed URLs stay valid
	Expiry time.Duration
}

// S3Signer presigns GET and PUT requests against the feed media bucket
type S3Signer struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	region    string
	expiry    time.Duration
}

// NewS3Signer loads the default AWS credential chain and creates a signer
func NewS3Signer(ctx context.Context, opts S3Options) (*S3Signer, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewS3SignerFromConfig(cfg, opts), nil
}

// NewS3SignerFromConfig creates a signer from an already loaded AWS config
func NewS3SignerFromConfig(cfg aws.Config, opts S3Options) *S3Signer {
	if opts.Region != "" {
		cfg.Region = opts.Region
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Signer{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    opts.Bucket,
		region:    cfg.Region,
		expiry:    opts.Expiry,
	}
}

// SignedDownloadURL presigns a GET for key
func (s *S3Signer) SignedDownloadURL(ctx context.Context, key string) (url string, err error) {
	start := time.Now()
	ctx, span := telemetry.TraceStorageCall(ctx, "presign_get", s.bucket, key)
	defer func() {
		metrics.RecordSignedURL("get", time.Since(start), err)
		telemetry.EndSpan(span, err)
	}()

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign GET for %s: %w", key, err)
	}

	return req.URL, nil
}

// SignedUploadURL presigns a PUT for key
func (s *S3Signer) SignedUploadURL(ctx context.Context, key string) (url string, err error) {
	start := time.Now()
	ctx, span := telemetry.TraceStorageCall(ctx, "presign_put", s.bucket, key)
	defer func() {
		metrics.RecordSignedURL("put", time.Since(start), err)
		telemetry.EndSpan(span, err)
	}()

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign PUT for %s: %w", key, err)
	}

	return req.URL, nil
}

// CheckBucketAccess verifies that we can access the S3 bucket
func (s *S3Signer) CheckBucketAccess(ctx context.Context) (err error) {
	ctx, span := telemetry.TraceStorageCall(ctx, "head_bucket", s.bucket, "")
	defer func() { telemetry.EndSpan(span, err) }()

	_, err = s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("cannot access S3 bucket %s: %w", s.bucket, err)
	}

	return nil
}

// Bucket returns the bucket the signer targets
func (s *S3Signer) Bucket() string {
	return s.bucket
}
