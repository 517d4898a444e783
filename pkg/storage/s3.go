// Package storage implements the attachment store on top of S3-compatible
// object storage. Uploaded blobs are addressed by an object key that doubles
// as the opaque deletion handle kept on the owning record.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider selects the addressing style of the S3-compatible backend.
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderCustom Provider = "custom" // any S3-compatible host (Wasabi, MinIO, ...)
)

// Config holds connection settings for the attachment store.
type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	RootFolder      string // project folder prefixed to every object key

	// Custom-provider settings; such hosts require path-style addressing.
	Endpoint string // e.g. "s3.eu-central-1.wasabisys.com"
}

// S3Store is the concrete attachment store. It satisfies
// domain.AttachmentStore.
type S3Store struct {
	client  *s3.Client
	bucket  string
	root    string
	baseURL string
}

// NewS3Store creates the store client. Supports AWS S3 and any
// S3-compatible provider behind a custom endpoint.
func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	var baseURL string

	switch cfg.Provider {
	case ProviderCustom:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("custom S3 provider requires an endpoint")
		}
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.Endpoint)
			o.UsePathStyle = true
		})
		baseURL = fmt.Sprintf("https://%s/%s", cfg.Endpoint, cfg.Bucket)
	default:
		client = s3.NewFromConfig(awsCfg)
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		root:    strings.Trim(cfg.RootFolder, "/"),
		baseURL: baseURL,
	}, nil
}

// Upload stores data under <root>/<folder>/<filename> and returns the public
// URL plus the object key used for later deletion.
func (s *S3Store) Upload(ctx context.Context, folder, filename string, data []byte) (fileURL, fileID string, err error) {
	key := path.Join(s.root, folder, sanitizeFilename(filename))

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("attachment upload failed: %w", err)
	}

	return s.baseURL + "/" + key, key, nil
}

// Delete removes the object identified by the key returned from Upload.
func (s *S3Store) Delete(ctx context.Context, fileID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return fmt.Errorf("attachment delete failed: %w", err)
	}
	return nil
}

// Ping verifies bucket access at startup.
func (s *S3Store) Ping(ctx context.Context) error {
	_, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", s.bucket, err)
	}
	return nil
}

// sanitizeFilename keeps object keys ASCII-only and space-free.
func sanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r > unicode.MaxASCII:
			// drop
		case r == '/' || r == '\\':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	name := b.String()
	if strings.TrimSuffix(name, filepath.Ext(name)) == "" {
		name = "file" + name
	}
	return name
}
