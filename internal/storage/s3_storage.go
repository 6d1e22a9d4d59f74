package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/foodgram/foodgram-backend/config"
	"github.com/foodgram/foodgram-backend/pkg/logger"
)

type S3Storage struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

func NewS3Storage(ctx context.Context, cfg config.S3Config) *S3Storage {
	var awsCfg aws.Config
	var err error

	// Static credentials when configured, otherwise the default chain (env, ~/.aws, IAM role)
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			logger.Warn("Failed to load default AWS config, using region only", map[string]interface{}{
				"error": err.Error(),
			})
			awsCfg = aws.Config{Region: cfg.Region}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: cfg.BaseURL,
	}
}

func (s *S3Storage) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyPayload
	}

	key := newKey(ext)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType := mime.TypeByExtension("." + ext); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, Object{
				Key:     aws.ToString(obj.Key),
				ModTime: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}

// URL uses the CDN base URL when set, otherwise the bucket's virtual-hosted URL
func (s *S3Storage) URL(key string) string {
	if s.baseURL != "" {
		return joinURL(s.baseURL, key)
	}
	return joinURL(fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region), key)
}

var _ ImageStore = (*S3Storage)(nil)
