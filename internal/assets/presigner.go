// Package assets issues upload URLs for profile media stored in S3 compatible
// object storage. The store never handles media bytes itself.
package assets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds object storage settings
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string

	// PublicBaseURL is prepended to object keys to form the asset URL that is
	// stored as a profile link. Defaults to the bucket URL.
	PublicBaseURL string

	UploadExpiry time.Duration
}

// Upload describes a presigned upload
type Upload struct {
	Key         string
	UploadURL   string
	AssetURL    string
	ContentType string
	ExpiresAt   time.Time
}

// Presigner issues presigned upload requests
type Presigner interface {
	PresignUpload(ctx context.Context, key, contentType string, size int64) (*Upload, error)
}

// S3Presigner presigns PUT requests against an S3 compatible endpoint
type S3Presigner struct {
	client *s3.PresignClient
	cfg    Config
}

var _ Presigner = (*S3Presigner)(nil)

// NewS3Presigner builds a presigner from static credentials. Presigning is
// local, so no request reaches the object store until the client uploads.
func NewS3Presigner(ctx context.Context, cfg Config) (*S3Presigner, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if cfg.UploadExpiry <= 0 {
		cfg.UploadExpiry = 15 * time.Minute
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Presigner{
		client: s3.NewPresignClient(client),
		cfg:    cfg,
	}, nil
}

// PresignUpload returns a PUT URL for key that only accepts the declared
// content type and length
func (p *S3Presigner) PresignUpload(ctx context.Context, key, contentType string, size int64) (*Upload, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.cfg.Bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, s3.WithPresignExpires(p.cfg.UploadExpiry))
	if err != nil {
		return nil, err
	}

	return &Upload{
		Key:         key,
		UploadURL:   req.URL,
		AssetURL:    p.assetURL(key),
		ContentType: contentType,
		ExpiresAt:   time.Now().Add(p.cfg.UploadExpiry),
	}, nil
}

func (p *S3Presigner) assetURL(key string) string {
	base := p.cfg.PublicBaseURL
	if base == "" {
		if p.cfg.Endpoint != "" {
			base = strings.TrimRight(p.cfg.Endpoint, "/") + "/" + p.cfg.Bucket
		} else {
			base = "https://" + p.cfg.Bucket + ".s3." + p.cfg.Region + ".amazonaws.com"
		}
	}
	return strings.TrimRight(base, "/") + "/" + key
}
