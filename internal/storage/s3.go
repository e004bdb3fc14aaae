// Package storage uploads generated files to S3 and hands back the public
// URL that gets persisted on the creation record.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func New(ctx context.Context, region, bucket, baseURL string) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET is required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &Store{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores data under a generated key with the given extension and
// content type, returning the hosted URL.
func (s *Store) Upload(ctx context.Context, prefix, ext, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}
