// ABOUTME: S3-compatible object store backed by minio-go
// ABOUTME: Downloads inputs and uploads generated models without retries
package objectstore

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config holds connection settings for an S3-compatible endpoint
type S3Config struct {
	Endpoint     string
	Region       string
	UseSSL       bool
	AccessKey    string
	SecretKey    string
	SessionToken string
}

// S3 moves objects to and from an S3-compatible service
type S3 struct {
	client *minio.Client
}

// NewS3 creates a store. Without static keys the AWS environment, shared
// credentials file, and instance role are tried in that order.
func NewS3(cfg S3Config) (*S3, error) {
	var creds *credentials.Credentials
	if cfg.AccessKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)
	} else {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{Client: &http.Client{Transport: http.DefaultTransport}},
		})
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 client for %s: %w", cfg.Endpoint, err)
	}
	return &S3{client: client}, nil
}

// Fetch downloads bucket/key to localPath
func (s *S3) Fetch(ctx context.Context, bucket, key, localPath string) error {
	if err := s.client.FGetObject(ctx, bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("downloading s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// Put uploads localPath to bucket/key
func (s *S3) Put(ctx context.Context, localPath, bucket, key string) error {
	opts := minio.PutObjectOptions{ContentType: contentType(localPath)}
	if _, err := s.client.FPutObject(ctx, bucket, key, localPath, opts); err != nil {
		return fmt.Errorf("uploading to s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

func contentType(path string) string {
	switch filepath.Ext(path) {
	case ".pdb":
		return "chemical/x-pdb"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
