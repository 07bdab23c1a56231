package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/sitecrew/sitelog/internal/config"
)

// presignTTL is how long an issued upload URL stays valid. Long enough for a
// phone on a construction site, short enough not to leak a standing write
// credential.
const presignTTL = 15 * time.Minute

// MediaService issues presigned PUT URLs against an S3-compatible store
// (MinIO in development) so clients upload site photos directly, without the
// bytes passing through this API.
type MediaService struct {
	cfg config.Config
}

// NewMediaService constructs a MediaService from the loaded configuration.
func NewMediaService(cfg config.Config) *MediaService {
	return &MediaService{cfg: cfg}
}

// storageKey returns a fresh object key partitioned by capture date, so
// bucket listings stay navigable by day.
func storageKey(now time.Time) string {
	return fmt.Sprintf("photos/%04d/%02d/%02d/%s", now.Year(), now.Month(), now.Day(), uuid.New())
}

// presignClient builds an S3 presign client against the configured endpoint.
func (s *MediaService) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.S3AccessKey,
			s.cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("service.MediaService: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.S3Endpoint)
		o.UsePathStyle = true // MinIO serves buckets by path, not subdomain
	})

	return s3.NewPresignClient(client), nil
}

// PresignPut returns a storage key and a presigned URL the client can PUT
// the photo bytes to. The key is what gets recorded on the update document.
func (s *MediaService) PresignPut(ctx context.Context, contentType string) (string, string, error) {
	presigner, err := s.presignClient(ctx)
	if err != nil {
		return "", "", err
	}

	key := storageKey(time.Now())
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, err := presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", "", fmt.Errorf("service.MediaService.PresignPut: %w", err)
	}

	return key, req.URL, nil
}

// PresignGet returns a presigned URL for reading a previously uploaded object.
func (s *MediaService) PresignGet(ctx context.Context, key string) (string, error) {
	presigner, err := s.presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", fmt.Errorf("service.MediaService.PresignGet: %w", err)
	}

	return req.URL, nil
}
