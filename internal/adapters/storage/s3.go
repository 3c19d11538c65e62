package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"memoir/internal/domain"
)

// S3Config holds configuration for the S3-compatible media object store.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // optional, for S3-compatible services
	PublicBaseURL   string // optional, overrides the derived public URL prefix
}

type s3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store returns an ObjectStore backed by an S3 bucket. Uploaded objects
// are addressed by the returned public URL, which collaborators later fetch
// directly.
func NewS3Store(cfg S3Config) (domain.ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	}

	var s3Options []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	base := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if base == "" {
		if cfg.Endpoint != "" {
			base = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.Endpoint, "/"), cfg.Bucket)
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &s3Store{
		client:        s3.NewFromConfig(awsCfg, s3Options...),
		bucket:        cfg.Bucket,
		publicBaseURL: base,
	}, nil
}

func (s *s3Store) Put(ctx context.Context, key, contentType string, data io.Reader) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   data,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s", s.publicBaseURL, key), nil
}
