package storage

import (
	"bytes"
	"context"
	"errors"
	"net/url"

	"account-service/internal/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const profileImagePrefix = "profile-images/"

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// Client keeps a copy of every uploaded profile image in S3. The stored
// data URI remains the source of truth; the bucket is an archive.
type Client struct {
	cfg S3Config
	s3  *s3.Client
}

func NewClient(ctx context.Context, cfg S3Config) (*Client, error) {
	if cfg.Region == "" || cfg.Bucket == "" {
		return nil, errors.New("s3 region and bucket are required")
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	endpoint := cfg.Endpoint
	if endpoint != "" {
		if parsed, err := url.Parse(endpoint); err == nil {
			endpoint = parsed.String()
		}
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		cfg: cfg,
		s3:  s3Client,
	}, nil
}

// ProfileImageKey returns the object key holding a user's profile image.
func ProfileImageKey(userID string) string {
	return profileImagePrefix + userID
}

func (c *Client) PutProfileImage(ctx context.Context, userID string, img user.Image) error {
	if c == nil {
		return errors.New("s3 client not initialized")
	}
	if userID == "" {
		return errors.New("user id is required")
	}
	if img.ContentType == "" {
		return errors.New("content type is required")
	}
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.cfg.Bucket),
		Key:           aws.String(ProfileImageKey(userID)),
		Body:          bytes.NewReader(img.Data),
		ContentType:   aws.String(img.ContentType),
		ContentLength: aws.Int64(int64(len(img.Data))),
	})
	return err
}

func (c *Client) DeleteProfileImage(ctx context.Context, userID string) error {
	if c == nil {
		return errors.New("s3 client not initialized")
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(ProfileImageKey(userID)),
	})
	return err
}
