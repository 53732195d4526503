package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/nilehomes/landing/internal/config"
)

// S3 stores uploads in an S3-compatible bucket.
type S3 struct {
	client     *s3.Client
	bucket     string
	prefix     string
	publicBase string
}

// NewS3 builds an S3 store with static credentials.
func NewS3(_ context.Context, cfg config.S3RuntimeConfig, publicBase string) (*S3, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, errors.New("s3 bucket and region are required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("s3 access_key_id and secret_access_key are required")
	}

	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: cfg.PathStyle,
	}
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(strings.TrimRight(endpoint, "/"))
	}

	if publicBase == "" || strings.HasPrefix(publicBase, "/") {
		publicBase = bucketURL(cfg)
	}
	return &S3{
		client:     s3.New(opts),
		bucket:     cfg.Bucket,
		prefix:     cfg.Prefix,
		publicBase: publicBase,
	}, nil
}

func (s *S3) objectKey(key string) (string, error) {
	key, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return key, nil
}

func (s *S3) Put(ctx context.Context, obj Object) (string, error) {
	key, err := s.objectKey(obj.Key)
	if err != nil {
		return "", err
	}
	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        obj.Body,
		ContentType: aws.String(contentType),
	}
	if obj.Size > 0 {
		input.ContentLength = aws.Int64(obj.Size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return joinURL(s.publicBase, key), nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

// bucketURL is the public address of the bucket root when no CDN base is configured.
func bucketURL(cfg config.S3RuntimeConfig) string {
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.Contains(endpoint, "://") {
			endpoint = "https://" + endpoint
		}
		u, err := url.Parse(strings.TrimRight(endpoint, "/"))
		if err == nil && u.Host != "" {
			if cfg.PathStyle {
				return u.Scheme + "://" + u.Host + "/" + cfg.Bucket
			}
			return u.Scheme + "://" + cfg.Bucket + "." + u.Host
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}
