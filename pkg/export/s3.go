package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNoBucket is returned when an S3 sink is configured without a bucket
var ErrNoBucket = errors.New("s3 sink requires a bucket")

// S3Config configures the S3 snapshot sink
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // custom endpoint, e.g. MinIO or LocalStack
	// Static credentials; when empty the default AWS credential chain is used.
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// PutObjectAPI is the slice of the S3 client the sink needs
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads snapshots with PutObject
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Sink builds an S3 client from cfg and the default AWS configuration chain.
func NewS3Sink(ctx context.Context, cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	opts := make([]func(*awsconfig.LoadOptions) error, 0, 2)
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3SinkWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewS3SinkWithClient wraps an existing client
func NewS3SinkWithClient(client PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// Name implements Sink
func (s *S3Sink) Name() string {
	return "s3"
}

// Key returns the object key a snapshot name is stored under
func (s *S3Sink) Key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Write uploads data as a single object
func (s *S3Sink) Write(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.Key(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType(name)),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, s.Key(name), err)
	}
	return nil
}

func contentType(name string) string {
	if path.Ext(name) == snappyExt {
		return "application/octet-stream"
	}
	return "text/plain; charset=utf-8"
}
