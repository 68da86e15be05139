package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ImageUpload is a presigned slot for one food photo.
type ImageUpload struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ImageService hands out presigned S3 PUT URLs so clients upload food photos
// straight to object storage.
type ImageService struct {
	config *config.Config
}

func NewImageService(cfg *config.Config) *ImageService {
	return &ImageService{config: cfg}
}

// NewStorageKey returns a unique, date-partitioned object key for a photo.
func NewStorageKey(now time.Time) string {
	return fmt.Sprintf("foods/%d/%02d/%02d/%v", now.Year(), now.Month(), now.Day(), uuid.New())
}

func (s *ImageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// PresignUpload reserves a new key and returns a URL the client can PUT the
// photo to until it expires.
func (s *ImageService) PresignUpload(ctx context.Context) (*ImageUpload, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bucket := s.config.S3Bucket
	key := NewStorageKey(now)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.S3PresignTTL))
	if err != nil {
		return nil, err
	}

	return &ImageUpload{Key: key, UploadURL: req.URL, ExpiresAt: now.Add(s.config.S3PresignTTL)}, nil
}
