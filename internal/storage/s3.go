package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Prefix = "profile-images/"

// S3 uploads through the multipart upload manager. Credentials come from the
// default provider chain.
type S3 struct {
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

func NewS3(ctx context.Context, cfg *config.Config) (*S3, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3Bucket,
		baseURL:  objectBaseURL(cfg),
	}, nil
}

func (s *S3) Save(ctx context.Context, fh *multipart.FileHeader) (*Stored, error) {
	name, contentType, err := objectName(fh.Filename)
	if err != nil {
		return nil, err
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	key := s3Prefix + name
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return &Stored{Filename: name, URL: s.baseURL + "/" + key}, nil
}

// objectBaseURL prefers PUBLIC_BASE_URL (a CDN in front of the bucket), then
// a custom endpoint, then the regional virtual-hosted URL.
func objectBaseURL(cfg *config.Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.S3Endpoint != "":
		return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.AWSRegion)
	}
}
