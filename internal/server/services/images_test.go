package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/server/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageService() *ImageService {
	return NewImageService(&config.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "share-bites",
		S3PresignTTL:   10 * time.Minute,
	})
}

func stubPresignClient(t *testing.T) *string {
	t.Helper()
	origLoad, origNewS3, origNewPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}

	var endpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint != nil {
			endpoint = *opts.BaseEndpoint
		}
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }

	return &endpoint
}

func TestNewStorageKey(t *testing.T) {
	now := time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)
	a := NewStorageKey(now)
	b := NewStorageKey(now)

	assert.True(t, strings.HasPrefix(a, "foods/2025/03/07/"), a)
	assert.NotEqual(t, a, b)
}

func TestImageService_PresignUpload(t *testing.T) {
	endpoint := stubPresignClient(t)

	origPut := presignPutObject
	t.Cleanup(func() { presignPutObject = origPut })

	var gotBucket, gotKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket, gotKey = *in.Bucket, *in.Key
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, 10*time.Minute, po.Expires)
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/share-bites/" + *in.Key}, nil
	}

	up, err := newImageService().PresignUpload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000", *endpoint)
	assert.Equal(t, "share-bites", gotBucket)
	assert.Equal(t, gotKey, up.Key)
	assert.Equal(t, "http://127.0.0.1:9000/share-bites/"+up.Key, up.UploadURL)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), up.ExpiresAt, time.Minute)
}

func TestImageService_PresignUpload_Errors(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		orig := loadDefaultAWSConfig
		t.Cleanup(func() { loadDefaultAWSConfig = orig })
		loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, errors.New("load-fail")
		}

		_, err := newImageService().PresignUpload(context.Background())
		assert.EqualError(t, err, "load-fail")
	})

	t.Run("presign", func(t *testing.T) {
		stubPresignClient(t)
		origPut := presignPutObject
		t.Cleanup(func() { presignPutObject = origPut })
		presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
			return nil, errors.New("presign-put-fail")
		}

		_, err := newImageService().PresignUpload(context.Background())
		assert.EqualError(t, err, "presign-put-fail")
	})
}
